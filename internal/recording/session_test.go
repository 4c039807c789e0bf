package recording

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestAppendConcatenatesChunksInOrder(t *testing.T) {
	m, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	sess := m.Default()

	chunks := [][]byte{[]byte("AAA"), []byte("BBB"), []byte("CCC")}
	for _, c := range chunks {
		if _, err := sess.Append(bytes.NewReader(c)); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	got, err := os.ReadFile(sess.WorkingPath())
	if err != nil {
		t.Fatalf("read working file: %v", err)
	}
	want := []byte("AAABBBCCC")
	if !bytes.Equal(got, want) {
		t.Errorf("working file = %q, want %q", got, want)
	}
}

func TestAppendCreatesWorkingFile(t *testing.T) {
	m, _ := NewManager(t.TempDir())
	sess := m.Default()

	if sess.HasRecording() {
		t.Fatal("expected no recording before first append")
	}
	if _, err := sess.Append(bytes.NewReader([]byte("x"))); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if !sess.HasRecording() {
		t.Error("expected recording after first append")
	}
}

func TestDefaultSessionUsesLegacyNames(t *testing.T) {
	dir := t.TempDir()
	m, _ := NewManager(dir)
	sess := m.Default()

	if got, want := sess.WorkingPath(), filepath.Join(dir, "live_recording.webm"); got != want {
		t.Errorf("working path = %q, want %q", got, want)
	}
	if got, want := sess.ArtifactPath(), filepath.Join(dir, "final_recording.mp3"); got != want {
		t.Errorf("artifact path = %q, want %q", got, want)
	}
}

func TestCreatedSessionsGetDistinctPaths(t *testing.T) {
	m, _ := NewManager(t.TempDir())

	a := m.Create()
	b := m.Create()
	if a.ID == b.ID {
		t.Fatal("expected distinct session ids")
	}
	if a.WorkingPath() == b.WorkingPath() || a.ArtifactPath() == b.ArtifactPath() {
		t.Error("expected id-scoped file paths")
	}

	got, ok := m.Get(a.ID)
	if !ok || got != a {
		t.Error("Get did not return the created session")
	}
	m.Remove(a.ID)
	if _, ok := m.Get(a.ID); ok {
		t.Error("expected session to be forgotten after Remove")
	}
}

func TestBeginFinalizeIsSingleFlight(t *testing.T) {
	m, _ := NewManager(t.TempDir())
	sess := m.Default()

	if err := sess.BeginFinalize(); err != nil {
		t.Fatalf("first BeginFinalize: %v", err)
	}
	if err := sess.BeginFinalize(); err != ErrFinalizeInProgress {
		t.Errorf("second BeginFinalize = %v, want ErrFinalizeInProgress", err)
	}
	sess.EndFinalize()
	if err := sess.BeginFinalize(); err != nil {
		t.Errorf("BeginFinalize after EndFinalize: %v", err)
	}
}

func TestRemoveWorkingToleratesMissingFile(t *testing.T) {
	m, _ := NewManager(t.TempDir())
	sess := m.Default()

	if err := sess.RemoveWorking(); err != nil {
		t.Errorf("RemoveWorking on missing file: %v", err)
	}

	_, _ = sess.Append(bytes.NewReader([]byte("x")))
	if err := sess.RemoveWorking(); err != nil {
		t.Fatalf("RemoveWorking: %v", err)
	}
	if sess.HasRecording() {
		t.Error("expected working file to be gone")
	}
}
