package upload

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

type Disk struct {
	Dir     string
	BaseURL string
	Prefix  string
	Now     func() time.Time
}

func NewDisk(dir, baseURL string) (*Disk, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Disk{Dir: dir, BaseURL: baseURL, Prefix: "product", Now: time.Now}, nil
}

// Save writes <prefix>_<unix-ms><ext> under Dir; the URL points at /images.
func (d *Disk) Save(ctx context.Context, filename, _ string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name := fmt.Sprintf("%s_%d%s", d.Prefix, d.Now().UnixMilli(), ext(filename))

	f, err := os.OpenFile(filepath.Join(d.Dir, name), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", name, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", name, err)
	}
	return d.BaseURL + "/images/" + name, nil
}
