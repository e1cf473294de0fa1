package store

import (
	"context"
	"errors"
	"os"
	"slices"
	"testing"

	ferrors "github.com/matzehuels/familytower/pkg/errors"
	"github.com/matzehuels/familytower/pkg/family"
)

func sampleFamily() family.Family {
	return family.Family{
		People: []family.Person{
			{ID: "p1", Name: "Anna", Gender: family.GenderFemale},
			{ID: "p2", Name: "Ben", Gender: family.GenderMale},
			{ID: "p3", Name: "Cleo", IsCollapsed: true},
		},
		Marriages: []family.Marriage{
			{ID: "m1", Type: family.Monogamous, Spouses: []string{"p1", "p2"}, ChildrenIDs: []string{"p3"}},
			{ID: "m2", Type: family.Polygamous, HusbandID: "p2", Wives: []family.Wife{{WifeID: "", ChildrenIDs: nil}}},
		},
	}
}

// exerciseStore runs the behaviour every backend shares.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Load(ctx, "smiths")
	if !errors.Is(err, ErrNotFound) || !ferrors.Is(err, ferrors.ErrCodeFamilyNotFound) {
		t.Fatalf("Load missing = %v, want FAMILY_NOT_FOUND", err)
	}

	want := sampleFamily()
	if err := s.Save(ctx, "smiths", want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Save(ctx, "jones", family.Family{}); err != nil {
		t.Fatalf("Save empty: %v", err)
	}

	got, err := s.Load(ctx, "smiths")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !slices.Equal(got.People, want.People) {
		t.Errorf("people = %+v, want %+v", got.People, want.People)
	}
	if len(got.Marriages) != 2 || got.Marriages[0].ChildrenIDs[0] != "p3" || got.Marriages[1].HusbandID != "p2" {
		t.Errorf("marriages = %+v", got.Marriages)
	}

	ids, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if !slices.Equal(ids, []string{"jones", "smiths"}) {
		t.Errorf("List = %v", ids)
	}

	if err := s.Delete(ctx, "smiths"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, "smiths"); err != nil {
		t.Errorf("Delete missing: %v", err)
	}
	if _, err := s.Load(ctx, "smiths"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load after Delete = %v", err)
	}

	for _, bad := range []string{"", "../etc/passwd", "a/b"} {
		if err := s.Save(ctx, bad, want); !ferrors.Is(err, ferrors.ErrCodeInvalidArgument) {
			t.Errorf("Save(%q) = %v, want INVALID_ARGUMENT", bad, err)
		}
	}
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	defer s.Close()
	exerciseStore(t, s)
}

func TestFileStoreIgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dir+"/notes.txt", []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(dir+"/sub.json", 0700); err != nil {
		t.Fatal(err)
	}
	ids, err := s.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 0 {
		t.Errorf("List = %v, want empty", ids)
	}
	if s.Path() != dir {
		t.Errorf("Path = %s, want %s", s.Path(), dir)
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestMemoryStoreIsolatesCallers(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	f := sampleFamily()
	if err := s.Save(ctx, "smiths", f); err != nil {
		t.Fatal(err)
	}
	f.Marriages[0].ChildrenIDs[0] = "mutated"

	got, _ := s.Load(ctx, "smiths")
	if got.Marriages[0].ChildrenIDs[0] != "p3" {
		t.Error("store shares marriage slices with the caller")
	}
}

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("FAMILYTOWER_MONGO_URI")
	if uri == "" {
		t.Skip("FAMILYTOWER_MONGO_URI not set")
	}
	ctx := context.Background()
	s, err := NewMongoStore(ctx, MongoOptions{URI: uri, Collection: "families_test"})
	if err != nil {
		t.Fatalf("NewMongoStore: %v", err)
	}
	defer s.Close()
	defer s.coll.Drop(ctx)
	exerciseStore(t, s)
}

func TestNewMongoStoreRequiresURI(t *testing.T) {
	_, err := NewMongoStore(context.Background(), MongoOptions{})
	if !ferrors.Is(err, ferrors.ErrCodeInvalidConfig) {
		t.Errorf("error = %v, want INVALID_CONFIG", err)
	}
}
