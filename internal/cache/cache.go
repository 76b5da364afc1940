package cache

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	xxhash "github.com/cespare/xxhash/v2"
	git "github.com/go-git/go-git/v5"
)

const fileName = "shotredactcache.json"

type DB struct {
	// File name relative to the screenshots dir -> xxhash of the last
	// bytes shotredact wrote there combined with the recipe that produced
	// them.
	Entries map[string]string `json:"entries"`
}

// Lookup reports whether name was last written with exactly data by the
// same recipe. A changed recipe (boxes, placeholders, paint options)
// never matches.
func (db DB) Lookup(name string, data, recipe []byte) bool {
	want, ok := db.Entries[name]
	return ok && want == Sum(data, recipe)
}

// Record stores the digest of data and recipe for name.
func (db DB) Record(name string, data, recipe []byte) {
	db.Entries[name] = Sum(data, recipe)
}

// Sum returns the hex xxhash64 of data followed by recipe. The length of
// data is mixed in so the split point is unambiguous.
func Sum(data, recipe []byte) string {
	d := xxhash.New()
	var n [8]byte
	binary.LittleEndian.PutUint64(n[:], uint64(len(data)))
	_, _ = d.Write(n[:])
	_, _ = d.Write(data)
	_, _ = d.Write(recipe)
	return fmt.Sprintf("%016x", d.Sum64())
}

// StateDir is where cache and audit files live for dir: the .git directory
// of the enclosing repository when there is one, otherwise dir itself.
func StateDir(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return dir
	}
	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	if err == nil {
		if wt, err := repo.Worktree(); err == nil {
			gitDir := filepath.Join(wt.Filesystem.Root(), ".git")
			if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
				return gitDir
			}
		}
	}
	return abs
}

func defaultPath(dir string) string {
	state := StateDir(dir)
	if filepath.Base(state) == ".git" {
		return filepath.Join(state, fileName)
	}
	return filepath.Join(state, "."+fileName)
}

// Load reads the cache for dir. On any error it still returns a usable
// empty DB; a missing file wraps fs.ErrNotExist.
func Load(dir string) (DB, error) {
	var db DB
	f, err := os.ReadFile(defaultPath(dir))
	if err != nil {
		return DB{Entries: map[string]string{}}, err
	}
	if err := json.Unmarshal(f, &db); err != nil {
		return DB{Entries: map[string]string{}}, fmt.Errorf("corrupt cache %s: %w", defaultPath(dir), err)
	}
	if db.Entries == nil {
		db.Entries = map[string]string{}
	}
	return db, nil
}

func Save(dir string, db DB) error {
	if db.Entries == nil {
		return errors.New("empty cache")
	}
	b, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(defaultPath(dir), b, 0644)
}
