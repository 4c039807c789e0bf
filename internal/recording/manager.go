package recording

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// Manager owns recording sessions keyed by generated id. The default
// session uses the legacy fixed file names, which is what the chunk
// upload API without an explicit session id operates on.
type Manager struct {
	dir string

	mu       sync.Mutex
	sessions map[string]*Session
	def      *Session
}

func NewManager(dir string) (*Manager, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Manager{
		dir:      dir,
		sessions: make(map[string]*Session),
	}, nil
}

// Dir is the directory holding working files and artifacts; it is the
// same directory served statically at /uploads.
func (m *Manager) Dir() string { return m.dir }

// Default returns the process-wide default session.
func (m *Manager) Default() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.def == nil {
		m.def = &Session{
			ID:           "default",
			workingPath:  filepath.Join(m.dir, DefaultWorkingName),
			artifactPath: filepath.Join(m.dir, DefaultArtifactName),
		}
	}
	return m.def
}

// Create makes a new session with id-scoped file names, so recordings
// beyond the default one cannot clobber each other.
func (m *Manager) Create() *Session {
	id := uuid.NewString()
	s := &Session{
		ID:           id,
		workingPath:  filepath.Join(m.dir, "rec_"+id+".webm"),
		artifactPath: filepath.Join(m.dir, "rec_"+id+".mp3"),
	}
	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()
	return s
}

func (m *Manager) Get(id string) (*Session, bool) {
	if id == "" || id == "default" {
		return m.Default(), true
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Remove forgets a created session. The default session is permanent.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}
