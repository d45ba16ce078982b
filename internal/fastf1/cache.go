package fastf1

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
)

// cacheKey flattens a request path into a single file name.
func cacheKey(path string) string {
	return strings.Trim(strings.ReplaceAll(path, "/", "_"), "_") + ".json"
}

func (c *Client) cacheRead(path string) ([]byte, bool) {
	if c.cacheDir == "" {
		return nil, false
	}

	data, err := ioutil.ReadFile(filepath.Join(c.cacheDir, cacheKey(path)))

	if err != nil {
		return nil, false
	}

	return data, true
}

// cacheWrite stores a response via temp file and rename, so a concurrent
// reader never observes a partial entry. Cache failures are logged and
// ignored; the cache is best-effort.
func (c *Client) cacheWrite(path string, data []byte) {
	if c.cacheDir == "" {
		return
	}

	if err := os.MkdirAll(c.cacheDir, 0755); err != nil {
		c.logger.WithError(err).Warnf("Could not create cache directory %s", c.cacheDir)

		return
	}

	tmp, err := ioutil.TempFile(c.cacheDir, "entry-*.tmp")

	if err != nil {
		c.logger.WithError(err).Warnf("Could not create cache entry for %s", path)

		return
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		c.logger.WithError(err).Warnf("Could not write cache entry for %s", path)

		return
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())

		return
	}

	if err := os.Rename(tmp.Name(), filepath.Join(c.cacheDir, cacheKey(path))); err != nil {
		os.Remove(tmp.Name())
		c.logger.WithError(err).Warnf("Could not store cache entry for %s", path)
	}
}
