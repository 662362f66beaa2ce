package sheetreport

import (
	"encoding/binary"
	"math"
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/ukaji3/sheetreport-go/pkg/sheetreport/models"
	"golang.org/x/sync/singleflight"
)

// DefaultCacheSize is the number of reports a Cache keeps.
const DefaultCacheSize = 16

// Fingerprint hashes the shape and contents of g. Equal grids have equal
// fingerprints.
func Fingerprint(g *models.Grid) uint64 {
	d := xxhash.New()
	var buf [9]byte

	binary.LittleEndian.PutUint32(buf[0:4], uint32(g.Rows()))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(g.Cols()))
	_, _ = d.Write(buf[:8])

	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			v := g.At(r, c)
			buf[0] = byte(v.Kind)
			switch v.Kind {
			case models.KindNumber:
				binary.LittleEndian.PutUint64(buf[1:], math.Float64bits(v.Number))
				_, _ = d.Write(buf[:9])
			case models.KindText, models.KindUnparsed:
				binary.LittleEndian.PutUint64(buf[1:], uint64(len(v.Text)))
				_, _ = d.Write(buf[:9])
				_, _ = d.WriteString(v.Text)
			default:
				_, _ = d.Write(buf[:1])
			}
		}
	}
	return d.Sum64()
}

// Cache memoizes ExtractGrid by grid fingerprint for one set of options.
// It is safe for concurrent use; concurrent misses on the same grid run one
// extraction. Cached reports are shared and must not be modified.
type Cache struct {
	opts  Options
	size  int
	group singleflight.Group

	mu      sync.Mutex
	entries map[uint64]*models.Report
	order   []uint64
}

// NewCache creates a cache holding up to size reports (DefaultCacheSize if size <= 0).
func NewCache(opts Options, size int) *Cache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	return &Cache{
		opts:    opts,
		size:    size,
		entries: make(map[uint64]*models.Report, size),
	}
}

// Extract returns the report for g, computing it on a miss. hit reports
// whether the result came from the cache.
func (c *Cache) Extract(g *models.Grid) (report *models.Report, hit bool, err error) {
	if g == nil {
		return nil, false, ErrNoGrid
	}
	key := Fingerprint(g)

	if report, ok := c.get(key); ok {
		return report, true, nil
	}

	v, err, _ := c.group.Do(strconv.FormatUint(key, 16), func() (interface{}, error) {
		if report, ok := c.get(key); ok {
			return report, nil
		}
		report, err := ExtractGrid(g, c.opts)
		if err != nil {
			return nil, err
		}
		c.put(key, report)
		return report, nil
	})
	if err != nil {
		return nil, false, err
	}
	return v.(*models.Report), false, nil
}

// Len returns the number of cached reports.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) get(key uint64) (*models.Report, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	report, ok := c.entries[key]
	return report, ok
}

func (c *Cache) put(key uint64, report *models.Report) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; ok {
		return
	}
	if len(c.order) >= c.size {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	c.entries[key] = report
	c.order = append(c.order, key)
}
