package scaffold

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/evanraalte/nstimes/internal/domain"
)

//go:embed templates
var templatesFS embed.FS

// Template files are stored without a leading dot so embed picks them up.
var targetNames = map[string]string{
	"env": ".env",
}

// Result lists what Init wrote, relative to the root.
type Result struct {
	Written []string
	Skipped []string
}

// Init writes a starter nstimes.yaml and .env into root and makes sure the
// secrets and state stay out of git. Existing files are kept unless force.
func Init(root string, force bool) (Result, error) {
	root = filepath.Clean(root)
	var res Result

	if err := os.MkdirAll(filepath.Join(root, ".nstimes", "logs"), 0o755); err != nil {
		return res, opErr(root, err)
	}

	if err := ensureGitignore(root); err != nil {
		return res, opErr(filepath.Join(root, ".gitignore"), err)
	}

	err := fs.WalkDir(templatesFS, "templates", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel := strings.TrimPrefix(p, "templates/")
		if name, ok := targetNames[path.Base(rel)]; ok {
			rel = path.Join(path.Dir(rel), name)
		}
		dst := filepath.Join(root, filepath.FromSlash(rel))

		if !force {
			if _, statErr := os.Stat(dst); statErr == nil {
				res.Skipped = append(res.Skipped, rel)
				return nil
			}
		}

		b, err := fs.ReadFile(templatesFS, p)
		if err != nil {
			return err
		}

		mode := fs.FileMode(0o644)
		if rel == ".env" {
			mode = 0o600
		}
		if err := os.WriteFile(dst, b, mode); err != nil {
			return err
		}
		res.Written = append(res.Written, rel)
		return nil
	})
	if err != nil {
		return res, opErr(root, err)
	}
	return res, nil
}

func opErr(path string, err error) error {
	return &domain.OpError{
		Op:   "scaffold.init",
		Kind: domain.KindExecution,
		Path: path,
		Err:  err,
	}
}

func ensureGitignore(root string) error {
	const header = "# nstimes"
	entries := []string{
		".env",
		".nstimes/",
	}

	p := filepath.Join(root, ".gitignore")
	b, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			lines := append([]string{header}, entries...)
			lines = append(lines, "")
			return os.WriteFile(p, []byte(strings.Join(lines, "\n")), 0o644)
		}
		return err
	}

	existing := string(b)
	present := map[string]bool{}
	for _, line := range strings.Split(existing, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		present[trimmed] = true
	}

	var missing []string
	for _, e := range entries {
		if !present[e] {
			missing = append(missing, e)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	var out strings.Builder
	out.Grow(len(existing) + 32)

	out.WriteString(existing)
	if existing != "" && !strings.HasSuffix(existing, "\n") {
		out.WriteByte('\n')
	}
	out.WriteByte('\n')
	if !present[header] {
		out.WriteString(header)
		out.WriteByte('\n')
	}
	for _, e := range missing {
		out.WriteString(e)
		out.WriteByte('\n')
	}

	return os.WriteFile(p, []byte(out.String()), 0o644)
}
