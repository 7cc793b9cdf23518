package players

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/codr1/courtslots/internal/players"
	"github.com/codr1/courtslots/internal/testutil"
)

func TestHandleListAndUpdatePlayers(t *testing.T) {
	database := testutil.NewTestDB(t)
	s, err := players.NewService(database)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	directory = s
	t.Cleanup(func() { directory = nil })

	ctx := context.Background()
	contact := players.Contact{FirstName: "Ana", LastName: "Diaz", Email: "ana@example.com"}
	player, _, err := players.ResolveOrCreate(ctx, database.Queries, contact, sql.NullInt64{}, time.Now())
	if err != nil {
		t.Fatalf("ResolveOrCreate: %v", err)
	}
	category := testutil.SeedCategory(t, database, "F", "3", "competitive")

	rec := httptest.NewRecorder()
	HandleListPlayers(rec, httptest.NewRequest(http.MethodGet, "/api/v1/admin/players", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var listing struct {
		Players []playerResponse `json:"players"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&listing); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(listing.Players) != 1 || listing.Players[0].AccessCode != player.AccessCode {
		t.Fatalf("unexpected listing %+v", listing.Players)
	}

	body := fmt.Sprintf(`{"first_name":"Anabel","category_id":%d}`, category.ID)
	req := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(body))
	req.SetPathValue("id", fmt.Sprint(player.ID))
	rec = httptest.NewRecorder()
	HandleUpdatePlayer(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var updated playerResponse
	if err := json.NewDecoder(rec.Body).Decode(&updated); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if updated.FirstName != "Anabel" || updated.CategoryID == nil || *updated.CategoryID != category.ID {
		t.Fatalf("unexpected update %+v", updated)
	}
	if updated.AccessCode != player.AccessCode {
		t.Fatal("update must not change the access code")
	}

	req = httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(`{"first_name":"X"}`))
	req.SetPathValue("id", "4040")
	rec = httptest.NewRecorder()
	HandleUpdatePlayer(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
