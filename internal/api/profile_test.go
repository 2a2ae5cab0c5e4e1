package api

import (
	"context"
	"net/http"
	"testing"

	"game_backend/internal/domain"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

func newProfileRouter(store *mockStore, currentUserID string) *gin.Engine {
	rdb := testRedis()
	r := gin.New()
	r.GET("/user/profile", func(c *gin.Context) { c.Set("userID", currentUserID) }, GetProfileHandler(store, rdb))
	r.PUT("/user/profile/update", UpdateProfileHandler(store, store, store, rdb))
	return r
}

// seedUser registers a user with one profile directly into the store.
func seedUser(t *testing.T, store *mockStore, email, nickname string) *domain.User {
	t.Helper()
	user := &domain.User{Email: email, HashedPassword: "x", Role: "user"}
	profile := &domain.UserProfile{Nickname: nickname}
	if err := store.CreateUserWithProfile(context.Background(), user, profile); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

// seedCharacter adds a character to the user's first profile.
func seedCharacter(t *testing.T, store *mockStore, user *domain.User, appearance map[string]string, abilities map[string]int, backstory *string) *domain.CharacterConfig {
	t.Helper()
	profile, err := store.GetProfileByUserID(context.Background(), user.ID)
	if err != nil || profile == nil {
		t.Fatalf("seed character: no profile for %s", user.ID)
	}
	character := &domain.CharacterConfig{
		ProfileID:  profile.ID,
		Appearance: datatypes.NewJSONType(appearance),
		Abilities:  datatypes.NewJSONType(abilities),
		Backstory:  backstory,
	}
	if err := store.CreateCharacter(context.Background(), character); err != nil {
		t.Fatalf("seed character: %v", err)
	}
	return character
}

func TestGetProfileNotFound(t *testing.T) {
	store := newMockStore()
	r := newProfileRouter(store, "no-such-user")

	w := doJSON(t, r, http.MethodGet, "/user/profile", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGetProfileReturnsUserData(t *testing.T) {
	store := newMockStore()
	user := seedUser(t, store, "morgana@camelot.example", "morgana")
	r := newProfileRouter(store, user.ID)

	w := doJSON(t, r, http.MethodGet, "/user/profile", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp ProfileResponse
	decodeBody(t, w, &resp)
	if resp.Nickname != "morgana" {
		t.Errorf("nickname = %q, want %q", resp.Nickname, "morgana")
	}
	if resp.Email != "morgana@camelot.example" {
		t.Errorf("email = %q, want %q", resp.Email, "morgana@camelot.example")
	}
	if resp.AvatarURL != "" {
		t.Errorf("unset avatar should render empty, got %q", resp.AvatarURL)
	}
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	store := newMockStore()
	r := newProfileRouter(store, "")

	w := doJSON(t, r, http.MethodPut, "/user/profile/update", gin.H{
		"user_id":  "no-such-user",
		"nickname": "ghost",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp UpdateProfileResponse
	decodeBody(t, w, &resp)
	if resp.Success {
		t.Fatal("update for unknown user should fail")
	}
	if resp.Message != "User not found." {
		t.Errorf("message = %q, want %q", resp.Message, "User not found.")
	}
	if store.profileUpdates != 0 || store.characterUpdates != 0 {
		t.Errorf("no writes expected, got %d profile and %d character updates", store.profileUpdates, store.characterUpdates)
	}
}

func TestUpdateProfileOverwritesNicknameAndAvatar(t *testing.T) {
	store := newMockStore()
	user := seedUser(t, store, "kay@camelot.example", "kay")
	store.profiles[0].AvatarURL = strPtr("https://cdn.example/old.png")
	r := newProfileRouter(store, user.ID)

	// No avatar_url in the request clears the stored one.
	w := doJSON(t, r, http.MethodPut, "/user/profile/update", gin.H{
		"user_id":  user.ID,
		"nickname": "sir kay",
	})
	var resp UpdateProfileResponse
	decodeBody(t, w, &resp)
	if !resp.Success {
		t.Fatalf("update failed: %q", resp.Message)
	}
	if resp.UpdatedNickname != "sir kay" {
		t.Errorf("updatedNickname = %q, want %q", resp.UpdatedNickname, "sir kay")
	}
	if store.profiles[0].Nickname != "sir kay" {
		t.Errorf("stored nickname = %q, want %q", store.profiles[0].Nickname, "sir kay")
	}
	if store.profiles[0].AvatarURL != nil {
		t.Errorf("avatar should be cleared, got %q", *store.profiles[0].AvatarURL)
	}
}

func TestUpdateProfileCascadesToAllCharacters(t *testing.T) {
	store := newMockStore()
	user := seedUser(t, store, "percival@camelot.example", "percival")
	first := seedCharacter(t, store, user,
		map[string]string{"hairColor": "black"},
		map[string]int{"strength": 10},
		strPtr("A quiet knight."))
	second := seedCharacter(t, store, user,
		map[string]string{"hairColor": "brown"},
		map[string]int{"strength": 7},
		nil)
	r := newProfileRouter(store, user.ID)

	w := doJSON(t, r, http.MethodPut, "/user/profile/update", gin.H{
		"user_id":  user.ID,
		"nickname": "percival",
		"character_details": gin.H{
			"appearance": gin.H{"hairColor": "silver"},
		},
	})
	var resp UpdateProfileResponse
	decodeBody(t, w, &resp)
	if !resp.Success {
		t.Fatalf("update failed: %q", resp.Message)
	}
	if store.characterUpdates != 1 {
		t.Fatalf("expected one bulk character update, got %d", store.characterUpdates)
	}
	for _, id := range []string{first.ID, second.ID} {
		c := store.characters[id]
		if got := c.Appearance.Data()["hairColor"]; got != "silver" {
			t.Errorf("character %s hairColor = %q, want %q", id, got, "silver")
		}
		// Absent cascade fields are overwritten, not merged.
		if len(c.Abilities.Data()) != 0 {
			t.Errorf("character %s abilities should be emptied, got %v", id, c.Abilities.Data())
		}
		if c.Backstory != nil {
			t.Errorf("character %s backstory should be cleared, got %q", id, *c.Backstory)
		}
	}
}

func TestUpdateProfileSkipsCascadeWhenEmpty(t *testing.T) {
	store := newMockStore()
	user := seedUser(t, store, "tristan@camelot.example", "tristan")
	seedCharacter(t, store, user, map[string]string{"hairColor": "red"}, map[string]int{"strength": 9}, nil)
	r := newProfileRouter(store, user.ID)

	w := doJSON(t, r, http.MethodPut, "/user/profile/update", gin.H{
		"user_id":           user.ID,
		"nickname":          "tristan",
		"character_details": gin.H{},
	})
	var resp UpdateProfileResponse
	decodeBody(t, w, &resp)
	if !resp.Success {
		t.Fatalf("update failed: %q", resp.Message)
	}
	if store.characterUpdates != 0 {
		t.Errorf("empty cascade payload must not touch characters, got %d updates", store.characterUpdates)
	}
}
