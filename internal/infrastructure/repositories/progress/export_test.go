package progress

import "github.com/cheggaaa/pb/v3"

// NewPoolProgressRepositoryWithStarter exposes the pool starter hook to tests.
func NewPoolProgressRepositoryWithStarter(
	start func(bars ...*pb.ProgressBar) (*pb.Pool, error),
) *PoolProgressRepository {
	return &PoolProgressRepository{start: start}
}
