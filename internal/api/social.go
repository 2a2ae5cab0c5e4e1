package api

import (
	"net/http" // HTTP status codes

	"game_backend/internal/domain"     // Importing domain models
	"game_backend/internal/repository" // Data-access layer

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// AddFriendRequest represents a friend request submission
type AddFriendRequest struct {
	SenderID   string `json:"sender_id" binding:"required"`   // User sending the request
	ReceiverID string `json:"receiver_id" binding:"required"` // User receiving the request
}

// AddFriendResponse reports the outcome of a friend request submission
type AddFriendResponse struct {
	Success bool   `json:"success"` // Whether the request was created
	Message string `json:"message"` // Human-readable outcome
}

// FriendDetail describes one friend entry in the friends list
type FriendDetail struct {
	FriendID  string  `json:"friend_id"`            // The friend's user id
	Nickname  string  `json:"nickname"`             // One of the friend's profile nicknames
	AvatarURL *string `json:"avatar_url,omitempty"` // Matching profile avatar, when set
}

// AddFriendHandler creates a pending friend request between two distinct,
// existing users. The pair is unordered: a request in either direction blocks
// a new one. Two racing calls may still both insert; the store does not
// enforce pair uniqueness.
func AddFriendHandler(users repository.UserRepository, friends repository.FriendRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddFriendRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Self-friending is rejected before any lookup
		if req.SenderID == req.ReceiverID {
			c.JSON(http.StatusOK, AddFriendResponse{
				Success: false,
				Message: "Cannot send a friend request to yourself.",
			})
			return
		}
		// Both users must exist; one batched lookup must match exactly two rows
		count, err := users.CountUsersByIDs(c.Request.Context(), []string{req.SenderID, req.ReceiverID})
		if err != nil {
			// Store failure during the lookup
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check users"})
			return
		}
		if count < 2 {
			// At least one side is unknown
			c.JSON(http.StatusOK, AddFriendResponse{
				Success: false,
				Message: "Either sender or receiver does not exist.",
			})
			return
		}
		// A request in either direction between the pair blocks a new one
		existing, err := friends.FindRequestBetween(c.Request.Context(), req.SenderID, req.ReceiverID)
		if err != nil {
			// Store failure during the duplicate check
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check friend requests"})
			return
		}
		if existing != nil {
			c.JSON(http.StatusOK, AddFriendResponse{
				Success: false,
				Message: "A friend request already exists between these users.",
			})
			return
		}
		request := domain.FriendRequest{
			SenderID:   req.SenderID,                // Requesting user
			ReceiverID: req.ReceiverID,              // Receiving user
			Status:     domain.FriendRequestPending, // New requests start pending
		}
		// Persist the new friend request
		if err := friends.CreateRequest(c.Request.Context(), &request); err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"sender_id":   req.SenderID,   // Requesting user
				"receiver_id": req.ReceiverID, // Receiving user
				"error":       err.Error(),    // Error message
			}).Error("Friend request creation failed") // Log creation failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create friend request"})
			return
		}
		// Return success response
		c.JSON(http.StatusOK, AddFriendResponse{Success: true, Message: "Friend request sent successfully."})
	}
}

// ListFriendsHandler returns the user's established friendships. A friend with
// several profiles yields one entry per profile.
func ListFriendsHandler(friends repository.FriendRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Query("user_id") // Requesting user id
		// The user id is required
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
			return
		}
		// Fetch the user's friendship edges with friend profiles preloaded
		friendships, err := friends.ListFriendships(c.Request.Context(), userID)
		if err != nil {
			// Store failure during the listing
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch friends"})
			return
		}
		// Flatten: one entry per profile of each friend
		details := make([]FriendDetail, 0, len(friendships))
		for _, friendship := range friendships {
			if friendship.Friend == nil {
				continue // Dangling edge; nothing to display
			}
			for _, profile := range friendship.Friend.Profiles {
				details = append(details, FriendDetail{
					FriendID:  friendship.FriendID, // The friend's user id
					Nickname:  profile.Nickname,    // Profile nickname
					AvatarURL: profile.AvatarURL,   // Profile avatar, when set
				})
			}
		}
		// Return the flattened friends list
		c.JSON(http.StatusOK, gin.H{"friends": details})
	}
}
