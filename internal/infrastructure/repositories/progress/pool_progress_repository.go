package progress

import (
	"io"
	"sync"

	"github.com/cheggaaa/pb/v3"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/rawfetch/internal/domain/repositories"
)

// poolStarter starts a pb pool rendering the given bars.
type poolStarter func(bars ...*pb.ProgressBar) (*pb.Pool, error)

// PoolProgressRepository renders one terminal progress bar per file, all
// sharing a single pb pool that is started with the first tracked file.
// A pool that fails to start disables progress for the rest of the batch.
type PoolProgressRepository struct {
	mu       sync.Mutex
	start    poolStarter
	pool     *pb.Pool
	disabled bool
}

// NewPoolProgressRepository creates an idle progress repository.
func NewPoolProgressRepository() repositories.ProgressRepository {
	return &PoolProgressRepository{start: pb.StartPool}
}

func (r *PoolProgressRepository) Track(name string, total int64, dst io.Writer) (io.Writer, func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.disabled {
		return dst, func() {}
	}

	bar := pb.New64(max(total, 0)).
		SetTemplate(pb.Full).
		Set(pb.Bytes, true).
		Set("prefix", name+" ")

	if r.pool == nil {
		pool, err := r.start(bar)
		if err != nil {
			logger.Debugf("Progress bars unavailable: %v", err)
			r.disabled = true
			return dst, func() {}
		}
		r.pool = pool
	} else {
		r.pool.Add(bar)
	}

	return bar.NewProxyWriter(dst), func() { bar.Finish() }
}

func (r *PoolProgressRepository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.disabled = false
	if r.pool == nil {
		return nil
	}
	err := r.pool.Stop()
	r.pool = nil
	return err
}
