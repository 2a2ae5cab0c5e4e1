package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"game_backend/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/datatypes"
)

// mockStore is a simple in-memory store implementing every repository
// interface, so one instance can back all handlers in a test.
type mockStore struct {
	mu          sync.RWMutex
	users       map[string]*domain.User
	profiles    []*domain.UserProfile
	characters  map[string]*domain.CharacterConfig
	requests    []*domain.FriendRequest
	friendships []*domain.Friendship
	items       map[string]*domain.Item
	purchases   []*domain.Purchase

	profileUpdates   int // number of UpdateProfilesByUserID calls
	characterUpdates int // number of OverwriteCharactersByUserID calls
}

func newMockStore() *mockStore {
	return &mockStore{
		users:      make(map[string]*domain.User),
		characters: make(map[string]*domain.CharacterConfig),
		items:      make(map[string]*domain.Item),
	}
}

// ---- UserRepository ----

func (m *mockStore) CreateUserWithProfile(ctx context.Context, user *domain.User, profile *domain.UserProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	m.users[user.ID] = user
	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	profile.UserID = user.ID
	profile.CreatedAt = user.CreatedAt
	profile.UpdatedAt = user.CreatedAt
	m.profiles = append(m.profiles, profile)
	return nil
}

func (m *mockStore) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockStore) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, nil
}

func (m *mockStore) CountUsersByIDs(ctx context.Context, ids []string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var count int64
	for _, id := range ids {
		if _, ok := m.users[id]; ok {
			count++
		}
	}
	return count, nil
}

// ---- ProfileRepository ----

func (m *mockStore) GetProfileByUserID(ctx context.Context, userID string) (*domain.UserProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.profiles {
		if p.UserID == userID {
			cp := *p
			cp.User = m.users[userID]
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockStore) UpdateProfilesByUserID(ctx context.Context, userID string, nickname string, avatarURL *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profileUpdates++
	for _, p := range m.profiles {
		if p.UserID == userID {
			p.Nickname = nickname
			p.AvatarURL = avatarURL
			p.UpdatedAt = time.Now()
		}
	}
	return nil
}

// ---- CharacterRepository ----

func (m *mockStore) CreateCharacter(ctx context.Context, character *domain.CharacterConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if character.ID == "" {
		character.ID = uuid.NewString()
	}
	m.characters[character.ID] = character
	return nil
}

func (m *mockStore) GetCharacterByID(ctx context.Context, id string) (*domain.CharacterConfig, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.characters[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (m *mockStore) ListCharacters(ctx context.Context) ([]*domain.CharacterConfig, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var all []*domain.CharacterConfig
	for _, c := range m.characters {
		cp := *c
		for _, p := range m.profiles {
			if p.ID == c.ProfileID {
				pc := *p
				cp.Profile = &pc
				break
			}
		}
		all = append(all, &cp)
	}
	return all, nil
}

func (m *mockStore) UpdateCharacter(ctx context.Context, character *domain.CharacterConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.characters[character.ID] = character
	return nil
}

func (m *mockStore) OverwriteCharactersByUserID(ctx context.Context, userID string, appearance map[string]string, abilities map[string]int, backstory *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.characterUpdates++
	owned := make(map[string]bool)
	for _, p := range m.profiles {
		if p.UserID == userID {
			owned[p.ID] = true
		}
	}
	for _, c := range m.characters {
		if owned[c.ProfileID] {
			c.Appearance = datatypes.NewJSONType(appearance)
			c.Abilities = datatypes.NewJSONType(abilities)
			c.Backstory = backstory
		}
	}
	return nil
}

// ---- FriendRepository ----

func (m *mockStore) FindRequestBetween(ctx context.Context, userA, userB string) (*domain.FriendRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.requests {
		if (r.SenderID == userA && r.ReceiverID == userB) || (r.SenderID == userB && r.ReceiverID == userA) {
			return r, nil
		}
	}
	return nil, nil
}

func (m *mockStore) CreateRequest(ctx context.Context, request *domain.FriendRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if request.ID == "" {
		request.ID = uuid.NewString()
	}
	m.requests = append(m.requests, request)
	return nil
}

func (m *mockStore) ListFriendships(ctx context.Context, userID string) ([]*domain.Friendship, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var edges []*domain.Friendship
	for _, f := range m.friendships {
		if f.UserID != userID {
			continue
		}
		cp := *f
		if friend, ok := m.users[f.FriendID]; ok {
			fc := *friend
			fc.Profiles = nil
			for _, p := range m.profiles {
				if p.UserID == friend.ID {
					fc.Profiles = append(fc.Profiles, *p)
				}
			}
			cp.Friend = &fc
		}
		edges = append(edges, &cp)
	}
	return edges, nil
}

// ---- ItemRepository ----

func (m *mockStore) CreateItem(ctx context.Context, item *domain.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	m.items[item.ID] = item
	return nil
}

func (m *mockStore) GetItemByID(ctx context.Context, id string) (*domain.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if item, ok := m.items[id]; ok {
		return item, nil
	}
	return nil, nil
}

func (m *mockStore) ListItems(ctx context.Context) ([]*domain.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var all []*domain.Item
	for _, item := range m.items {
		all = append(all, item)
	}
	return all, nil
}

// ---- PurchaseRepository ----

func (m *mockStore) CreatePurchase(ctx context.Context, purchase *domain.Purchase) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if purchase.ID == "" {
		purchase.ID = uuid.NewString()
	}
	purchase.CreatedAt = time.Now()
	m.purchases = append(m.purchases, purchase)
	return nil
}

func (m *mockStore) ListPurchases(ctx context.Context, offset, limit int) ([]*domain.Purchase, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if offset >= len(m.purchases) {
		return nil, nil
	}
	end := offset + limit
	if end > len(m.purchases) {
		end = len(m.purchases)
	}
	return m.purchases[offset:end], nil
}

func (m *mockStore) CountPurchases(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.purchases)), nil
}

// ---- helpers ----

// testRedis returns a client pointing at a closed port; every cache call fails
// fast and the handlers fall back to the store.
func testRedis() *redis.Client {
	return redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond})
}

// doJSON performs a JSON request against the router and returns the recorder.
func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// decodeBody unmarshals the recorded response into out.
func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

func strPtr(s string) *string { return &s }

func init() {
	gin.SetMode(gin.TestMode)
}
