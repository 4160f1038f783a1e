package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/msomdec/rms-content/internal/domain"
	"github.com/msomdec/rms-content/internal/repository/filesystem"
	"github.com/msomdec/rms-content/internal/repository/sqlite"
	"github.com/msomdec/rms-content/internal/service"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestAssets(t *testing.T) *filesystem.AssetStore {
	t.Helper()
	assets, err := filesystem.New(filepath.Join(t.TempDir(), "img", "slides"), discardLogger())
	if err != nil {
		t.Fatalf("New assets: %v", err)
	}
	return assets
}

func newTestSlideService(t *testing.T) (*service.SlideService, *sqlite.DB, *filesystem.AssetStore) {
	t.Helper()
	db := newTestDB(t)
	assets := newTestAssets(t)
	return service.NewSlideService(db.Slides(), assets, discardLogger(), 1<<20), db, assets
}

func png(name string) service.Upload {
	return service.Upload{Name: name, ContentType: "image/png", Data: pngBytes}
}

func mustCreate(t *testing.T, svc *service.SlideService, caption string, index int, name string) *domain.Slide {
	t.Helper()
	slide, err := svc.Create(context.Background(), caption, index, png(name))
	if err != nil {
		t.Fatalf("Create %s: %v", name, err)
	}
	return slide
}

func assetExists(t *testing.T, assets domain.AssetStore, name string) bool {
	t.Helper()
	ok, err := assets.Exists(context.Background(), name)
	if err != nil {
		t.Fatalf("Exists %s: %v", name, err)
	}
	return ok
}

// rekey moves a slide to a fixed id so tests can address it the same way
// every time.
func rekey(t *testing.T, svc *service.SlideService, from, to int64) {
	t.Helper()
	_, err := svc.Update(context.Background(), map[string]string{
		service.FieldID:      strconv.FormatInt(from, 10),
		service.FieldSlideID: strconv.FormatInt(to, 10),
	})
	if err != nil {
		t.Fatalf("rekey %d -> %d: %v", from, to, err)
	}
}

func TestSlideService_Create(t *testing.T) {
	svc, _, assets := newTestSlideService(t)
	ctx := context.Background()

	created := mustCreate(t, svc, "Robot arm", 3, "arm.png")
	if created.ID == 0 {
		t.Fatal("expected ID to be set")
	}

	got, err := svc.GetByImageName(ctx, "arm.png")
	if err != nil {
		t.Fatalf("GetByImageName: %v", err)
	}
	if got.Caption != "Robot arm" || got.Index != 3 {
		t.Fatalf("unexpected slide: %+v", got)
	}
	if !assetExists(t, assets, "arm.png") {
		t.Fatal("expected arm.png to be stored")
	}
}

func TestSlideService_Create_Validation(t *testing.T) {
	svc, _, assets := newTestSlideService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		caption string
		index   int
		upload  service.Upload
	}{
		{"empty caption", "", 0, png("a.png")},
		{"negative index", "c", -1, png("a.png")},
		{"index past last slot", "c", domain.SlideIndexSlots, png("a.png")},
		{"traversal name", "c", 0, png("../a.png")},
		{"empty image", "c", 0, service.Upload{Name: "a.png", ContentType: "image/png"}},
		{"not an image", "c", 0, service.Upload{Name: "a.png", ContentType: "text/html", Data: []byte("<p>")}},
		{"too large", "c", 0, service.Upload{Name: "a.png", ContentType: "image/png", Data: make([]byte, 1<<20+1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.caption, tt.index, tt.upload)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}

	if assetExists(t, assets, "a.png") {
		t.Fatal("rejected create must not store the image")
	}
}

func TestSlideService_Create_DuplicateImage(t *testing.T) {
	svc, _, _ := newTestSlideService(t)
	ctx := context.Background()

	mustCreate(t, svc, "first", 0, "arm.png")
	_, err := svc.Create(ctx, "second", 1, png("arm.png"))
	if !errors.Is(err, domain.ErrDuplicateAsset) {
		t.Fatalf("expected ErrDuplicateAsset, got %v", err)
	}

	slides, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(slides) != 1 || slides[0].Caption != "first" {
		t.Fatalf("expected only the first slide, got %+v", slides)
	}
}

func TestSlideService_Create_ReplacesOrphan(t *testing.T) {
	svc, _, assets := newTestSlideService(t)
	ctx := context.Background()

	if err := assets.Store(ctx, "orphan.png", []byte("stale")); err != nil {
		t.Fatalf("Store: %v", err)
	}

	slide := mustCreate(t, svc, "fresh", 2, "orphan.png")
	if slide.ImageName != "orphan.png" {
		t.Fatalf("unexpected image name %q", slide.ImageName)
	}
	if !assetExists(t, assets, "orphan.png") {
		t.Fatal("expected orphan.png to remain stored")
	}
}

func TestSlideService_Create_RowFailureRemovesImage(t *testing.T) {
	db := newTestDB(t)
	assets := newTestAssets(t)
	repo := &failingSlides{SlideRepository: db.Slides(), createErr: errors.New("disk I/O error")}
	svc := service.NewSlideService(repo, assets, discardLogger(), 1<<20)

	_, err := svc.Create(context.Background(), "c", 0, png("a.png"))
	if err == nil {
		t.Fatal("expected create to fail")
	}
	if assetExists(t, assets, "a.png") {
		t.Fatal("image must be removed when the row insert fails")
	}
}

func TestSlideService_Create_LostRaceKeepsImage(t *testing.T) {
	db := newTestDB(t)
	assets := newTestAssets(t)
	repo := &failingSlides{SlideRepository: db.Slides(), createErr: domain.ErrDuplicateAsset}
	svc := service.NewSlideService(repo, assets, discardLogger(), 1<<20)

	_, err := svc.Create(context.Background(), "c", 0, png("a.png"))
	if !errors.Is(err, domain.ErrDuplicateAsset) {
		t.Fatalf("expected ErrDuplicateAsset, got %v", err)
	}
	if !assetExists(t, assets, "a.png") {
		t.Fatal("image belongs to the winning row and must be kept")
	}
}

func TestSlideService_UploadImage(t *testing.T) {
	svc, _, assets := newTestSlideService(t)
	ctx := context.Background()

	mustCreate(t, svc, "owned", 0, "owned.png")

	if err := svc.UploadImage(ctx, png("owned.png")); !errors.Is(err, domain.ErrDuplicateAsset) {
		t.Fatalf("expected ErrDuplicateAsset for owned name, got %v", err)
	}
	if err := svc.UploadImage(ctx, png("next.png")); err != nil {
		t.Fatalf("UploadImage: %v", err)
	}
	if !assetExists(t, assets, "next.png") {
		t.Fatal("expected next.png to be stored")
	}
}

func TestSlideService_Update_Fields(t *testing.T) {
	svc, _, _ := newTestSlideService(t)
	ctx := context.Background()

	s := mustCreate(t, svc, "old", 1, "a.png")
	id := strconv.FormatInt(s.ID, 10)

	updated, err := svc.Update(ctx, map[string]string{
		service.FieldID:      id,
		service.FieldCaption: "new",
		service.FieldIndex:   "7",
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Caption != "new" || updated.Index != 7 {
		t.Fatalf("unexpected result: %+v", updated)
	}

	got, err := svc.GetByID(ctx, s.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Caption != "new" || got.Index != 7 || got.ImageName != "a.png" {
		t.Fatalf("unexpected stored slide: %+v", got)
	}
}

func TestSlideService_Update_ReplaceImage(t *testing.T) {
	svc, _, assets := newTestSlideService(t)
	ctx := context.Background()

	s := mustCreate(t, svc, "c", 0, "a.png")
	if err := svc.UploadImage(ctx, png("c.png")); err != nil {
		t.Fatalf("UploadImage: %v", err)
	}

	updated, err := svc.Update(ctx, map[string]string{
		service.FieldID:        strconv.FormatInt(s.ID, 10),
		service.FieldImageName: "c.png",
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.ImageName != "c.png" {
		t.Fatalf("expected c.png, got %q", updated.ImageName)
	}
	if assetExists(t, assets, "a.png") {
		t.Fatal("superseded image should be removed")
	}
	if !assetExists(t, assets, "c.png") {
		t.Fatal("new image should remain")
	}
}

func TestSlideService_Update_SameImageKeepsFile(t *testing.T) {
	svc, _, assets := newTestSlideService(t)
	ctx := context.Background()

	s := mustCreate(t, svc, "c", 0, "a.png")
	_, err := svc.Update(ctx, map[string]string{
		service.FieldID:        strconv.FormatInt(s.ID, 10),
		service.FieldImageName: "a.png",
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !assetExists(t, assets, "a.png") {
		t.Fatal("re-submitting the current image must not delete it")
	}
}

func TestSlideService_Update_Rekey(t *testing.T) {
	svc, _, _ := newTestSlideService(t)
	ctx := context.Background()

	s := mustCreate(t, svc, "c", 0, "a.png")
	other := mustCreate(t, svc, "d", 1, "b.png")

	_, err := svc.Update(ctx, map[string]string{
		service.FieldID:      strconv.FormatInt(s.ID, 10),
		service.FieldSlideID: strconv.FormatInt(other.ID, 10),
	})
	if !errors.Is(err, domain.ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}

	rekey(t, svc, s.ID, 42)
	if _, err := svc.GetByID(ctx, s.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected old id to be gone, got %v", err)
	}
	got, err := svc.GetByID(ctx, 42)
	if err != nil {
		t.Fatalf("GetByID(42): %v", err)
	}
	if got.ImageName != "a.png" {
		t.Fatalf("unexpected slide at 42: %+v", got)
	}
}

func TestSlideService_Update_Errors(t *testing.T) {
	svc, _, _ := newTestSlideService(t)
	ctx := context.Background()
	s := mustCreate(t, svc, "c", 0, "a.png")
	id := strconv.FormatInt(s.ID, 10)

	tests := []struct {
		name   string
		fields map[string]string
		want   error
	}{
		{"missing locator", map[string]string{service.FieldCaption: "x"}, domain.ErrInvalidInput},
		{"bad locator", map[string]string{service.FieldID: "abc"}, domain.ErrInvalidInput},
		{"unknown slide", map[string]string{service.FieldID: "999"}, domain.ErrNotFound},
		{"index out of range", map[string]string{service.FieldID: id, service.FieldIndex: "15"}, domain.ErrInvalidInput},
		{"index not a number", map[string]string{service.FieldID: id, service.FieldIndex: "x"}, domain.ErrInvalidInput},
		{"bad rekey", map[string]string{service.FieldID: id, service.FieldSlideID: "-4"}, domain.ErrInvalidInput},
		{"unsafe image name", map[string]string{service.FieldID: id, service.FieldImageName: "../etc"}, domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Update(ctx, tt.fields)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestSlideService_Update_BlankRekeyKeepsID(t *testing.T) {
	svc, _, _ := newTestSlideService(t)
	ctx := context.Background()
	s := mustCreate(t, svc, "c", 0, "a.png")

	got, err := svc.Update(ctx, map[string]string{
		service.FieldID:      strconv.FormatInt(s.ID, 10),
		service.FieldSlideID: "",
		service.FieldCaption: "new",
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.ID != s.ID || got.Caption != "new" {
		t.Fatalf("unexpected slide: %+v", got)
	}
}

func TestParseSlideIndex(t *testing.T) {
	for _, v := range []string{"0", "14"} {
		if _, err := service.ParseSlideIndex(v); err != nil {
			t.Errorf("%q: unexpected error %v", v, err)
		}
	}

	var messages []string
	for _, v := range []string{"two", "-1", "15", ""} {
		_, err := service.ParseSlideIndex(v)
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("%q: expected ErrInvalidInput, got %v", v, err)
		}
		messages = append(messages, err.Error())
	}
	for _, m := range messages {
		if m != messages[0] {
			t.Fatalf("expected one message for every bad index, got %q", messages)
		}
	}
	if !strings.Contains(messages[0], "index must be between 0 and 14") {
		t.Fatalf("unexpected message %q", messages[0])
	}
}

func TestSlideService_Update_ImageOwnedByAnotherSlide(t *testing.T) {
	svc, _, assets := newTestSlideService(t)
	ctx := context.Background()

	a := mustCreate(t, svc, "old", 0, "a.png")
	mustCreate(t, svc, "other", 1, "b.png")
	rekey(t, svc, a.ID, 5)

	_, err := svc.Update(ctx, map[string]string{
		service.FieldID:        "5",
		service.FieldImageName: "b.png",
	})
	if !errors.Is(err, domain.ErrDuplicateAsset) {
		t.Fatalf("expected ErrDuplicateAsset, got %v", err)
	}

	got, err := svc.GetByID(ctx, 5)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.ImageName != "a.png" || got.Caption != "old" {
		t.Fatalf("slide 5 changed: %+v", got)
	}
	if !assetExists(t, assets, "a.png") || !assetExists(t, assets, "b.png") {
		t.Fatal("no image may be removed by a rejected update")
	}
}

func TestSlideService_Update_ImageNotUploaded(t *testing.T) {
	svc, _, assets := newTestSlideService(t)
	ctx := context.Background()

	a := mustCreate(t, svc, "old", 0, "a.png")
	rekey(t, svc, a.ID, 5)

	_, err := svc.Update(ctx, map[string]string{
		service.FieldID:        "5",
		service.FieldImageName: "c.png",
	})
	if !errors.Is(err, domain.ErrAssetMissing) {
		t.Fatalf("expected ErrAssetMissing, got %v", err)
	}

	got, err := svc.GetByID(ctx, 5)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.ImageName != "a.png" {
		t.Fatalf("slide 5 changed: %+v", got)
	}
	if !assetExists(t, assets, "a.png") {
		t.Fatal("a.png must still be present")
	}
}

func TestSlideService_Update_UnknownFieldLeavesSlide(t *testing.T) {
	svc, _, _ := newTestSlideService(t)
	ctx := context.Background()

	a := mustCreate(t, svc, "old", 0, "a.png")
	rekey(t, svc, a.ID, 5)

	_, err := svc.Update(ctx, map[string]string{
		service.FieldID:      "5",
		service.FieldCaption: "new",
		"extra":              "x",
	})
	if !errors.Is(err, domain.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if got := err.Error(); got != `too many fields given: "extra" is not a slide field` {
		t.Fatalf("unexpected message %q", got)
	}

	got, err := svc.GetByID(ctx, 5)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Caption != "old" {
		t.Fatalf("caption must not change when the patch is rejected, got %q", got.Caption)
	}
}

func TestSlideService_Delete_RemovesRowThenImage(t *testing.T) {
	svc, _, assets := newTestSlideService(t)
	ctx := context.Background()

	a := mustCreate(t, svc, "c", 0, "a.png")
	rekey(t, svc, a.ID, 5)

	if err := svc.Delete(ctx, 5); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if assetExists(t, assets, "a.png") {
		t.Fatal("expected a.png to be removed")
	}
	if _, err := svc.GetByID(ctx, 5); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSlideService_Delete_NotFound(t *testing.T) {
	svc, _, _ := newTestSlideService(t)
	if err := svc.Delete(context.Background(), 99); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSlideService_Delete_RemoveFailureStillDeletesRow(t *testing.T) {
	db := newTestDB(t)
	fs := newTestAssets(t)
	assets := &failingAssets{AssetStore: fs, removeErr: errors.New("permission denied")}
	svc := service.NewSlideService(db.Slides(), assets, discardLogger(), 1<<20)
	ctx := context.Background()

	s := mustCreate(t, svc, "c", 0, "a.png")
	if err := svc.Delete(ctx, s.ID); err != nil {
		t.Fatalf("Delete should succeed when only image removal fails: %v", err)
	}
	if _, err := svc.GetByID(ctx, s.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected row to be deleted, got %v", err)
	}
	if !assetExists(t, fs, "a.png") {
		t.Fatal("expected the orphaned image to remain on disk")
	}
}

func TestSlideService_AssetUniqueness(t *testing.T) {
	svc, _, _ := newTestSlideService(t)
	ctx := context.Background()

	a := mustCreate(t, svc, "a", 0, "a.png")
	b := mustCreate(t, svc, "b", 1, "b.png")
	if err := svc.UploadImage(ctx, png("c.png")); err != nil {
		t.Fatalf("UploadImage: %v", err)
	}

	// Every attempt to share a name must fail, whatever the route.
	svc.Create(ctx, "dup", 2, png("a.png"))
	svc.Update(ctx, map[string]string{service.FieldID: strconv.FormatInt(b.ID, 10), service.FieldImageName: "a.png"})
	svc.Update(ctx, map[string]string{service.FieldID: strconv.FormatInt(a.ID, 10), service.FieldImageName: "c.png"})
	svc.Update(ctx, map[string]string{service.FieldID: strconv.FormatInt(b.ID, 10), service.FieldImageName: "c.png"})

	slides, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	seen := make(map[string]int64)
	for _, s := range slides {
		if owner, ok := seen[s.ImageName]; ok {
			t.Fatalf("slides %d and %d share image %s", owner, s.ID, s.ImageName)
		}
		seen[s.ImageName] = s.ID
	}
}

func TestSlideService_EverySlideHasItsImage(t *testing.T) {
	svc, _, assets := newTestSlideService(t)
	ctx := context.Background()

	a := mustCreate(t, svc, "a", 0, "a.png")
	b := mustCreate(t, svc, "b", 1, "b.png")
	mustCreate(t, svc, "c", 2, "c.png")

	if err := svc.UploadImage(ctx, png("a2.png")); err != nil {
		t.Fatalf("UploadImage: %v", err)
	}
	if _, err := svc.Update(ctx, map[string]string{service.FieldID: strconv.FormatInt(a.ID, 10), service.FieldImageName: "a2.png"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := svc.Delete(ctx, b.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	rekey(t, svc, a.ID, 77)

	slides, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(slides) != 2 {
		t.Fatalf("expected 2 slides, got %d", len(slides))
	}
	for _, s := range slides {
		got, err := svc.GetByID(ctx, s.ID)
		if err != nil {
			t.Fatalf("GetByID(%d): %v", s.ID, err)
		}
		if !assetExists(t, assets, got.ImageName) {
			t.Fatalf("slide %d references missing image %s", got.ID, got.ImageName)
		}
	}
}

func TestSlideService_Update_AllRecognizedFields(t *testing.T) {
	svc, _, _ := newTestSlideService(t)
	ctx := context.Background()

	s := mustCreate(t, svc, "c", 0, "a.png")
	if err := svc.UploadImage(ctx, png("z.png")); err != nil {
		t.Fatalf("UploadImage: %v", err)
	}

	updated, err := svc.Update(ctx, map[string]string{
		service.FieldID:        strconv.FormatInt(s.ID, 10),
		service.FieldSlideID:   "9",
		service.FieldCaption:   "all",
		service.FieldIndex:     "14",
		service.FieldImageName: "z.png",
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	want := domain.Slide{ID: 9, Caption: "all", Index: 14, ImageName: "z.png"}
	if *updated != want {
		t.Fatalf("got %+v, want %+v", *updated, want)
	}
	got, err := svc.GetByID(ctx, 9)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if *got != want {
		t.Fatalf("stored %+v, want %+v", *got, want)
	}
}

func TestSlideService_Update_LocatorOnlyIsNoop(t *testing.T) {
	svc, _, _ := newTestSlideService(t)
	ctx := context.Background()

	s := mustCreate(t, svc, "c", 4, "a.png")
	got, err := svc.Update(ctx, map[string]string{service.FieldID: strconv.FormatInt(s.ID, 10)})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if *got != *s {
		t.Fatalf("no-op update returned %+v, want %+v", *got, *s)
	}

	stored, err := svc.GetByID(ctx, s.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if *stored != *s {
		t.Fatalf("no-op update changed the row: %+v", *stored)
	}
}

func TestAssetRemoveIsIdempotent(t *testing.T) {
	assets := newTestAssets(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := assets.Remove(ctx, "never-stored.png"); err != nil {
			t.Fatalf("Remove attempt %d: %v", i+1, err)
		}
	}
}

func TestSlideService_Editor(t *testing.T) {
	svc, _, _ := newTestSlideService(t)
	ctx := context.Background()

	s := mustCreate(t, svc, "Robot arm", 3, "arm.png")

	editor, err := svc.Editor(ctx, &s.ID)
	if err != nil {
		t.Fatalf("Editor: %v", err)
	}
	if !editor.IsEdit || editor.ID != s.ID || editor.Caption != "Robot arm" || editor.ImageName != "arm.png" {
		t.Fatalf("unexpected edit form: %+v", editor)
	}
	if len(editor.IndexChoices) != domain.SlideIndexSlots {
		t.Fatalf("expected %d index choices, got %d", domain.SlideIndexSlots, len(editor.IndexChoices))
	}
	for _, c := range editor.IndexChoices {
		if c.Selected != (c.Value == 3) {
			t.Fatalf("choice %d selected=%v", c.Value, c.Selected)
		}
	}
}

func TestSlideService_Editor_FallsBackToCreate(t *testing.T) {
	svc, _, _ := newTestSlideService(t)
	ctx := context.Background()

	missing := int64(404)
	for _, id := range []*int64{nil, &missing} {
		editor, err := svc.Editor(ctx, id)
		if err != nil {
			t.Fatalf("Editor: %v", err)
		}
		if editor.IsEdit || editor.Caption != "" || editor.ImageName != "" {
			t.Fatalf("expected blank create form, got %+v", editor)
		}
		for _, c := range editor.IndexChoices {
			if c.Selected {
				t.Fatalf("create form must not preselect index %d", c.Value)
			}
		}
	}
}

type failingSlides struct {
	domain.SlideRepository
	createErr error
}

func (f *failingSlides) Create(ctx context.Context, slide *domain.Slide) error {
	return f.createErr
}

type failingAssets struct {
	domain.AssetStore
	removeErr error
}

func (f *failingAssets) Remove(ctx context.Context, name string) error {
	return f.removeErr
}
