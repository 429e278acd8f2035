package library

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// newTestLibrary builds a root with the classic two-set fixture: folder A
// tagged portrait/face with two images, folder B untagged with one image.
func newTestLibrary(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	writeSet(t, root, "A", map[string]string{
		"a1.jpg":    "fake",
		"a2.png":    "fake",
		"tags.yaml": "- portrait\n- face\n",
	})
	writeSet(t, root, "B", map[string]string{
		"b1.gif": "fake",
	})
	return root
}

func writeSet(t *testing.T, root, name string, files map[string]string) {
	t.Helper()

	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("Failed to create %s: %v", name, err)
	}
	for file, content := range files {
		if err := os.WriteFile(filepath.Join(dir, file), []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", file, err)
		}
	}
}

func TestScanBasicLibrary(t *testing.T) {
	t.Parallel()

	scanner := NewScanner(newTestLibrary(t), "/images")

	snap, err := scanner.Scan()
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if len(snap.Folders) != 2 {
		t.Fatalf("Expected 2 folders, got %d", len(snap.Folders))
	}
	if len(snap.Images) != 3 {
		t.Fatalf("Expected 3 images, got %d", len(snap.Images))
	}

	folderA := snap.Folders[0]
	if folderA.Name != "A" || folderA.ImageCount != 2 {
		t.Errorf("Unexpected folder A record: %+v", folderA)
	}
	if !reflect.DeepEqual(folderA.Tags, []string{"portrait", "face"}) {
		t.Errorf("Expected folder A tags [portrait face], got %v", folderA.Tags)
	}

	folderB := snap.Folders[1]
	if folderB.Name != "B" || folderB.ImageCount != 1 || len(folderB.Tags) != 0 {
		t.Errorf("Expected untagged folder B with 1 image, got %+v", folderB)
	}
}

func TestScanImageRecords(t *testing.T) {
	t.Parallel()

	scanner := NewScanner(newTestLibrary(t), "/images")

	snap, err := scanner.Scan()
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	a1 := snap.Images[0]
	if a1.Name != "a1.jpg" {
		t.Errorf("Expected a1.jpg first in scan order, got %s", a1.Name)
	}
	if a1.Path != "A/a1.jpg" {
		t.Errorf("Expected forward-slash relative path, got %q", a1.Path)
	}
	if a1.URL != "/images/A/a1.jpg" {
		t.Errorf("Expected URL joined with base serve path, got %q", a1.URL)
	}
	if a1.Folder != "A" {
		t.Errorf("Expected owning folder A, got %q", a1.Folder)
	}
	if !reflect.DeepEqual(a1.Tags, []string{"portrait", "face"}) {
		t.Errorf("Expected inherited folder tags, got %v", a1.Tags)
	}
}

func TestScanImageTagsAreCopies(t *testing.T) {
	t.Parallel()

	scanner := NewScanner(newTestLibrary(t), "/images")

	snap, err := scanner.Scan()
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	// Mutating a folder's tags after the scan must not leak into image
	// records built from it.
	snap.Folders[0].Tags[0] = "mutated"
	if snap.Images[0].Tags[0] != "portrait" {
		t.Error("Image tags alias the folder tag slice")
	}
}

func TestScanExtensionAllowList(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeSet(t, root, "Mixed", map[string]string{
		"keep1.jpg":  "fake",
		"keep2.JPEG": "fake",
		"keep3.WebP": "fake",
		"skip.txt":   "fake",
		"skip.bmp":   "fake",
		"skip.mp4":   "fake",
		"tags.yaml":  "- misc\n",
	})

	snap, err := NewScanner(root, "/images").Scan()
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if len(snap.Images) != 3 {
		t.Errorf("Expected 3 images from allow-list, got %d", len(snap.Images))
	}
	if snap.Folders[0].ImageCount != 3 {
		t.Errorf("Expected folder image count 3, got %d", snap.Folders[0].ImageCount)
	}
}

func TestScanSkipsFolderWithoutImages(t *testing.T) {
	t.Parallel()

	root := newTestLibrary(t)
	writeSet(t, root, "Empty", map[string]string{
		"tags.yaml": "- orphan\n",
		"notes.txt": "no images here",
	})

	snap, err := NewScanner(root, "/images").Scan()
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	for _, folder := range snap.Folders {
		if folder.Name == "Empty" {
			t.Error("Folder with zero qualifying images must not be recorded")
		}
	}
}

func TestScanIgnoresNestedDirectories(t *testing.T) {
	t.Parallel()

	root := newTestLibrary(t)
	// Images nested below an image set are never traversed.
	writeSet(t, root, filepath.Join("A", "deep"), map[string]string{
		"hidden.jpg": "fake",
	})

	snap, err := NewScanner(root, "/images").Scan()
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if len(snap.Images) != 3 {
		t.Errorf("Expected nested files to be ignored, got %d images", len(snap.Images))
	}
}

func TestScanIgnoresRootLevelFilesAndHiddenDirs(t *testing.T) {
	t.Parallel()

	root := newTestLibrary(t)
	if err := os.WriteFile(filepath.Join(root, "stray.jpg"), []byte("fake"), 0o644); err != nil {
		t.Fatalf("Failed to write stray file: %v", err)
	}
	writeSet(t, root, ".hidden", map[string]string{"h.jpg": "fake"})

	snap, err := NewScanner(root, "/images").Scan()
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if len(snap.Images) != 3 || len(snap.Folders) != 2 {
		t.Errorf("Expected 3 images in 2 folders, got %d in %d",
			len(snap.Images), len(snap.Folders))
	}
}

func TestScanMissingRoot(t *testing.T) {
	t.Parallel()

	scanner := NewScanner(filepath.Join(t.TempDir(), "nope"), "/images")

	snap, err := scanner.Scan()
	if err != nil {
		t.Fatalf("Missing root must be a non-fatal warning, got %v", err)
	}
	if len(snap.Images) != 0 || len(snap.Folders) != 0 {
		t.Errorf("Expected empty snapshot, got %d images, %d folders",
			len(snap.Images), len(snap.Folders))
	}
}

func TestScanUnsetRoot(t *testing.T) {
	t.Parallel()

	snap, err := NewScanner("", "/images").Scan()
	if err != nil {
		t.Fatalf("Unset root must be a non-fatal warning, got %v", err)
	}
	if len(snap.Images) != 0 || len(snap.Folders) != 0 {
		t.Error("Expected empty snapshot for unset root")
	}
}

func TestScanDeterministicOrderWithWorkers(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		writeSet(t, root, name, map[string]string{name + ".jpg": "fake"})
	}

	scanner := NewScanner(root, "/images")
	scanner.SetWorkers(4)

	first, err := scanner.Scan()
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	second, err := scanner.Scan()
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if !reflect.DeepEqual(first.Images, second.Images) {
		t.Error("Expected deterministic scan order across runs")
	}
	for i, want := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		if first.Folders[i].Name != want {
			t.Errorf("Expected folder %q at position %d, got %q", want, i, first.Folders[i].Name)
		}
	}
}

func TestScanMalformedMetadataIsolatedToFolder(t *testing.T) {
	t.Parallel()

	root := newTestLibrary(t)
	writeSet(t, root, "Corrupt", map[string]string{
		"c1.jpg":    "fake",
		"tags.yaml": "{{{not yaml",
	})

	snap, err := NewScanner(root, "/images").Scan()
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if len(snap.Folders) != 3 {
		t.Fatalf("Expected corrupt metadata to degrade, not abort: got %d folders", len(snap.Folders))
	}

	for _, folder := range snap.Folders {
		if folder.Name == "Corrupt" && len(folder.Tags) != 0 {
			t.Errorf("Expected corrupt folder to be untagged, got %v", folder.Tags)
		}
		if folder.Name == "A" && len(folder.Tags) != 2 {
			t.Errorf("Expected folder A tags unaffected, got %v", folder.Tags)
		}
	}
}
