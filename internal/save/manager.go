package save

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/board"
)

const (
	autosaveDir   = "autosave"
	quicksaveDir  = "quicksave"
	checkpointDir = "checkpoints"
	backupDir     = "backups"

	// maxAutosaves bounds the autosave rotation; older files are
	// pruned when a new autosave pushes the count past this.
	maxAutosaves = 10

	timestampLayout = "20060102_150405"
)

// validExtensions lists the file extensions the manager reads and
// writes; anything else is rejected on export and import.
var validExtensions = map[string]bool{".json": true, ".2048": true}

// Info describes one save file for listing purposes.
type Info struct {
	Name      string
	Path      string
	Score     int
	Size      int
	MaxTile   int
	Timestamp time.Time
}

// Manager owns the save directory tree and every read or write through
// it. Named saves live at the root; autosaves, quicksaves, checkpoints
// and backups each get a subdirectory.
type Manager struct {
	root   string
	logger *log.Logger
	now    func() time.Time
}

// NewManager creates the directory layout under root and returns a
// manager for it.
func NewManager(root string, logger *log.Logger) (*Manager, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "save"})
	}
	for _, dir := range []string{root,
		filepath.Join(root, autosaveDir),
		filepath.Join(root, quicksaveDir),
		filepath.Join(root, checkpointDir),
		filepath.Join(root, backupDir),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("save: cannot create directory %s: %w", dir, err)
		}
	}
	return &Manager{root: root, logger: logger, now: time.Now}, nil
}

// Root returns the directory the manager operates on.
func (m *Manager) Root() string { return m.root }

// resolve maps a save name to its path under the root, appending the
// default extension when the name carries none.
func (m *Manager) resolve(name string) string {
	if ext := filepath.Ext(name); validExtensions[ext] {
		return filepath.Join(m.root, name)
	}
	return filepath.Join(m.root, name+".json")
}

// Save writes st under the given name. An existing file at that name is
// copied into backups/ before being overwritten, so a later checksum
// failure can fall back to it.
func (m *Manager) Save(name string, st board.State) error {
	path := m.resolve(name)
	if _, err := os.Stat(path); err == nil {
		if err := m.backup(path); err != nil {
			m.logger.Warn("could not back up existing save", "path", path, "error", err)
		}
	}
	if err := m.write(path, st); err != nil {
		return err
	}
	m.logger.Debug("saved game", "path", path, "score", st.Score)
	return nil
}

// Load reads the named save, verifying its checksum. A corrupt file
// triggers a fallback search through its backups, newest first.
func (m *Manager) Load(name string) (board.State, error) {
	path := m.resolve(name)
	st, err := readFile(path)
	if err == nil {
		return st, nil
	}
	if os.IsNotExist(err) {
		return board.State{}, fmt.Errorf("%w: %s", ErrSaveNotFound, name)
	}
	m.logger.Warn("save failed verification, trying backups", "path", path, "error", err)
	st, berr := m.loadBackup(filepath.Base(path))
	if berr != nil {
		return board.State{}, fmt.Errorf("save: cannot load %s: %w", name, ErrCorruptSave)
	}
	m.logger.Info("recovered save from backup", "path", path)
	return st, nil
}

// Delete removes the named save. Backups are kept.
func (m *Manager) Delete(name string) error {
	path := m.resolve(name)
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrSaveNotFound, name)
		}
		return fmt.Errorf("save: cannot delete %s: %w", name, err)
	}
	return nil
}

// List returns the named saves at the root, newest first. Files that
// fail to parse are skipped with a warning rather than aborting the
// listing.
func (m *Manager) List() ([]Info, error) {
	return m.list(m.root)
}

// Autosave writes st into the autosave rotation and prunes the oldest
// files past the rotation limit.
func (m *Manager) Autosave(st board.State) error {
	name := fmt.Sprintf("autosave_%s.json", m.now().Format(timestampLayout))
	path := filepath.Join(m.root, autosaveDir, name)
	if err := m.write(path, st); err != nil {
		return err
	}
	m.prune(filepath.Join(m.root, autosaveDir), maxAutosaves)
	return nil
}

// LatestAutosave loads the newest autosave in the rotation.
func (m *Manager) LatestAutosave() (board.State, error) {
	infos, err := m.list(filepath.Join(m.root, autosaveDir))
	if err != nil {
		return board.State{}, err
	}
	if len(infos) == 0 {
		return board.State{}, fmt.Errorf("%w: no autosaves", ErrSaveNotFound)
	}
	return readFile(infos[0].Path)
}

// Quicksave writes st into a numbered quicksave slot, overwriting any
// previous occupant.
func (m *Manager) Quicksave(st board.State, slot int) error {
	if slot < 1 {
		return fmt.Errorf("save: quicksave slot must be positive, got %d", slot)
	}
	path := filepath.Join(m.root, quicksaveDir, fmt.Sprintf("slot_%d.json", slot))
	return m.write(path, st)
}

// Quickload reads a numbered quicksave slot.
func (m *Manager) Quickload(slot int) (board.State, error) {
	path := filepath.Join(m.root, quicksaveDir, fmt.Sprintf("slot_%d.json", slot))
	st, err := readFile(path)
	if os.IsNotExist(err) {
		return board.State{}, fmt.Errorf("%w: quicksave slot %d", ErrSaveNotFound, slot)
	}
	return st, err
}

// Checkpoint writes a timestamped checkpoint, optionally labelled, and
// returns the name it was stored under.
func (m *Manager) Checkpoint(st board.State, label string) (string, error) {
	name := fmt.Sprintf("checkpoint_%s", m.now().Format(timestampLayout))
	if label != "" {
		name += "_" + sanitize(label)
	}
	name += ".json"
	path := filepath.Join(m.root, checkpointDir, name)
	if err := m.write(path, st); err != nil {
		return "", err
	}
	return name, nil
}

// LoadCheckpoint reads a checkpoint by the name Checkpoint returned.
func (m *Manager) LoadCheckpoint(name string) (board.State, error) {
	st, err := readFile(filepath.Join(m.root, checkpointDir, name))
	if os.IsNotExist(err) {
		return board.State{}, fmt.Errorf("%w: checkpoint %s", ErrSaveNotFound, name)
	}
	return st, err
}

// ListCheckpoints returns the stored checkpoints, newest first.
func (m *Manager) ListCheckpoints() ([]Info, error) {
	return m.list(filepath.Join(m.root, checkpointDir))
}

// Export writes st to an arbitrary path outside the managed tree. The
// extension must be .json or .2048.
func (m *Manager) Export(st board.State, path string) error {
	if !validExtensions[filepath.Ext(path)] {
		return fmt.Errorf("%w: %s", ErrBadExtension, path)
	}
	return m.write(path, st)
}

// Import reads a save from an arbitrary path. External files get no
// backup fallback; a bad checksum is a hard error.
func (m *Manager) Import(path string) (board.State, error) {
	if !validExtensions[filepath.Ext(path)] {
		return board.State{}, fmt.Errorf("%w: %s", ErrBadExtension, path)
	}
	st, err := readFile(path)
	if os.IsNotExist(err) {
		return board.State{}, fmt.Errorf("%w: %s", ErrSaveNotFound, path)
	}
	return st, err
}

// write seals st and writes the envelope as indented JSON via a
// temporary file and rename, so a crash mid-write never leaves a
// truncated save behind.
func (m *Manager) write(path string, st board.State) error {
	env, err := Seal(st, m.now())
	if err != nil {
		return err
	}
	raw, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return fmt.Errorf("save: cannot encode %s: %w", path, err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("save: cannot write %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("save: cannot write %s: %w", path, err)
	}
	return nil
}

// backup copies the file at path into backups/ with a timestamped name.
func (m *Manager) backup(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	name := fmt.Sprintf("%s_%s%s", base, m.now().Format(timestampLayout), filepath.Ext(path))
	return os.WriteFile(filepath.Join(m.root, backupDir, name), raw, 0o644)
}

// loadBackup scans the backups of the given save file, newest first,
// and returns the first one that verifies.
func (m *Manager) loadBackup(filename string) (board.State, error) {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	entries, err := os.ReadDir(filepath.Join(m.root, backupDir))
	if err != nil {
		return board.State{}, err
	}
	var candidates []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasPrefix(e.Name(), base+"_") {
			candidates = append(candidates, e.Name())
		}
	}
	// Timestamped names sort chronologically; walk them newest first.
	sort.Sort(sort.Reverse(sort.StringSlice(candidates)))
	for _, name := range candidates {
		st, err := readFile(filepath.Join(m.root, backupDir, name))
		if err == nil {
			return st, nil
		}
		m.logger.Warn("backup failed verification", "name", name, "error", err)
	}
	return board.State{}, ErrCorruptSave
}

// list reads every save file in dir, newest first by timestamp.
func (m *Manager) list(dir string) ([]Info, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("save: cannot read directory %s: %w", dir, err)
	}
	var infos []Info
	for _, e := range entries {
		if e.IsDir() || !validExtensions[filepath.Ext(e.Name())] {
			continue
		}
		path := filepath.Join(dir, e.Name())
		env, err := readEnvelope(path)
		if err != nil {
			m.logger.Warn("skipping unreadable save", "path", path, "error", err)
			continue
		}
		ts, _ := time.Parse(time.RFC3339, env.GameData.Timestamp)
		infos = append(infos, Info{
			Name:      strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())),
			Path:      path,
			Score:     env.GameData.Score,
			Size:      env.GameData.Size,
			MaxTile:   env.GameData.Grid.MaxTile(),
			Timestamp: ts,
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Timestamp.After(infos[j].Timestamp) })
	return infos, nil
}

// prune removes the oldest files in dir past the keep limit.
func (m *Manager) prune(dir string, keep int) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	if len(names) <= keep {
		return
	}
	sort.Strings(names)
	for _, name := range names[:len(names)-keep] {
		if err := os.Remove(filepath.Join(dir, name)); err != nil {
			m.logger.Warn("could not prune autosave", "name", name, "error", err)
		}
	}
}

// readEnvelope parses a save file without verifying it.
func readEnvelope(path string) (Envelope, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Envelope{}, err
	}
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Envelope{}, fmt.Errorf("save: cannot parse %s: %w", path, err)
	}
	return env, nil
}

// readFile parses, verifies and validates a save file.
func readFile(path string) (board.State, error) {
	env, err := readEnvelope(path)
	if err != nil {
		return board.State{}, err
	}
	return Open(env)
}

// sanitize strips characters that would break a checkpoint filename.
func sanitize(label string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, label)
}
