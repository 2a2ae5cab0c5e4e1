package api

import (
	"context"
	"net/http"
	"testing"

	"game_backend/internal/domain"

	"github.com/gin-gonic/gin"
)

func newAdminRouter(store *mockStore) *gin.Engine {
	rdb := testRedis()
	r := gin.New()
	r.POST("/admin/item", CreateItemHandler(store, rdb))
	r.GET("/admin/purchases", ListPurchasesHandler(store, rdb))
	return r
}

func TestCreateItemRejectsInvalidInput(t *testing.T) {
	store := newMockStore()
	r := newAdminRouter(store)

	w := doJSON(t, r, http.MethodPost, "/admin/item", gin.H{
		"name":        "Cursed Blade",
		"description": "Looks sharp.",
		"price":       10.0,
		"category":    "CURSED",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid category: expected 400, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/admin/item", gin.H{
		"name":        "Refund Sword",
		"description": "Pays you.",
		"price":       -1.0,
		"category":    domain.ItemCategoryWeapon,
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("negative price: expected 400, got %d", w.Code)
	}
	if len(store.items) != 0 {
		t.Errorf("no item should be created, got %d", len(store.items))
	}
}

func TestCreateItemAddsToCatalog(t *testing.T) {
	store := newMockStore()
	r := newAdminRouter(store)

	w := doJSON(t, r, http.MethodPost, "/admin/item", gin.H{
		"name":        "Free Banner",
		"description": "A zero-cost cosmetic.",
		"price":       0.0,
		"category":    domain.ItemCategoryCosmetic,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if len(store.items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(store.items))
	}
	for _, item := range store.items {
		if item.Price != 0 || item.Category != domain.ItemCategoryCosmetic {
			t.Errorf("stored item = %+v", item)
		}
	}
}

func TestListPurchasesPaginates(t *testing.T) {
	store := newMockStore()
	for i := 0; i < 3; i++ {
		if err := store.CreatePurchase(context.Background(), &domain.Purchase{UserID: "u", ItemID: "i", Amount: 1}); err != nil {
			t.Fatalf("seed purchase: %v", err)
		}
	}
	r := newAdminRouter(store)

	w := doJSON(t, r, http.MethodGet, "/admin/purchases?page=1&page_size=2", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Purchases  []domain.Purchase `json:"purchases"`
		Total      int64             `json:"total"`
		TotalPages int               `json:"total_pages"`
		Cached     bool              `json:"cached"`
	}
	decodeBody(t, w, &resp)
	if len(resp.Purchases) != 2 {
		t.Errorf("page 1 size = %d, want 2", len(resp.Purchases))
	}
	if resp.Total != 3 || resp.TotalPages != 2 {
		t.Errorf("total = %d, total_pages = %d", resp.Total, resp.TotalPages)
	}
	if resp.Cached {
		t.Error("unreachable redis must not report a cache hit")
	}
}
