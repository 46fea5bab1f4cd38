// Package tagmatch decides whether an image file carries a given IPTC
// keyword. Metadata failures are swallowed: an unreadable or non-image
// file simply does not match.
package tagmatch

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/niwi/photoarc/internal/ports"
)

// JPEGExtensions is the extension set identifying JPEG-family images.
var JPEGExtensions = []string{"jpg", "jpeg"}

// FileHasExtension reports whether the lowercased filename's extension
// (the substring after the last dot) is in the allowed set. A name without
// a dot, or whose only dot is the leading character, has no extension.
func FileHasExtension(name string, allowed []string) bool {
	lower := strings.ToLower(name)
	idx := strings.LastIndex(lower, ".")
	extension := ""
	if idx > 0 {
		extension = lower[idx+1:]
	}
	for _, a := range allowed {
		if extension == a {
			return true
		}
	}
	return false
}

// Matcher checks files for IPTC keywords through a MetadataReader,
// caching verdicts so repeated runs do not re-extract metadata.
type Matcher struct {
	reader ports.MetadataReader
	cache  *gocache.Cache
}

// New creates a Matcher. Verdicts are cached for ttl; a non-positive ttl
// caches them for the Matcher's lifetime.
func New(reader ports.MetadataReader, ttl time.Duration) *Matcher {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	return &Matcher{
		reader: reader,
		cache:  gocache.New(ttl, 10*time.Minute),
	}
}

// FileHasTag reports whether path is a JPEG-family image whose IPTC
// Keywords contain tag as a whole word (case-sensitive). An empty tag
// never matches.
func (m *Matcher) FileHasTag(path, tag string) bool {
	if tag == "" {
		return false
	}
	if !FileHasExtension(filepath.Base(path), JPEGExtensions) {
		return false
	}

	key := path + "\x00" + tag
	if verdict, found := m.cache.Get(key); found {
		return verdict.(bool)
	}

	matched := m.lookup(path, tag)
	m.cache.Set(key, matched, gocache.DefaultExpiration)
	return matched
}

func (m *Matcher) lookup(path, tag string) bool {
	metadata, err := m.reader.ReadMetadata(path)
	if err != nil {
		// Not an image, or unreadable: not a match, never a failure.
		return false
	}

	keywords, ok := metadata["IPTC"]["Keywords"]
	if !ok {
		return false
	}

	word, err := regexp.Compile(`\b` + regexp.QuoteMeta(tag) + `\b`)
	if err != nil {
		return false
	}
	return word.MatchString(keywords.Description)
}
