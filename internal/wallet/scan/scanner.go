package scan

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github/chapool/tron-custody/internal/util"
	"github/chapool/tron-custody/internal/wallet/tron"
)

// CursorStore 持久化每个地址的扫描游标 (最后一个已扫描的区块高度).
type CursorStore interface {
	GetCursor(ctx context.Context, address string) (int64, bool, error)
	SetCursor(ctx context.Context, address string, height int64) error
}

// MemoryCursorStore is a process-local CursorStore.
type MemoryCursorStore struct {
	mu      sync.Mutex
	cursors map[string]int64
}

func NewMemoryCursorStore() *MemoryCursorStore {
	return &MemoryCursorStore{cursors: make(map[string]int64)}
}

func (s *MemoryCursorStore) GetCursor(_ context.Context, address string) (int64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	height, ok := s.cursors[address]

	return height, ok, nil
}

func (s *MemoryCursorStore) SetCursor(_ context.Context, address string, height int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursors[address] = height

	return nil
}

// Scanner 按游标增量扫描区块, 返回打入指定地址的转账交易.
type Scanner interface {
	Scan(ctx context.Context, address string) ([]ParsedTransaction, error)
}

type scanner struct {
	client    tron.Client
	cursors   CursorStore
	batchSize int
}

// NewScanner returns a cursor based block scanner. batchSize bounds how
// many blocks are fetched concurrently per batch; batches run one at a
// time.
//
//nolint:ireturn
func NewScanner(client tron.Client, cursors CursorStore, batchSize int) Scanner {
	if batchSize <= 0 {
		batchSize = 10
	}

	return &scanner{
		client:    client,
		cursors:   cursors,
		batchSize: batchSize,
	}
}

// Scan 扫描 (cursor, head] 区间内的区块.
// 首次扫描从 head-1 开始; head <= cursor 时无新区块, 返回空结果.
// 任一环节失败则整轮作废, 游标不前移, 下一轮重扫同一区间;
// 去重由下游按交易哈希完成, 重扫不会造成重复入账.
func (s *scanner) Scan(ctx context.Context, address string) ([]ParsedTransaction, error) {
	log := util.LogFromContext(ctx).With().Str("address", address).Logger()

	head, err := s.client.GetNowBlock(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get chain head")
	}
	headNum := head.BlockHeader.RawData.Number

	cursor, ok, err := s.cursors.GetCursor(ctx, address)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load scan cursor")
	}
	if !ok {
		// 首次观察该地址, 不回放历史
		cursor = headNum - 1
	}

	if headNum <= cursor {
		return nil, nil
	}

	var matched []ParsedTransaction

	for start := cursor + 1; start <= headNum; {
		end := start + int64(s.batchSize) - 1
		if end > headNum {
			end = headNum
		}

		batch, err := s.fetchBatch(ctx, start, end)
		if err != nil {
			log.Warn().Err(err).Int64("from", start).Int64("to", end).Msg("Block batch failed, cursor not advanced")

			return nil, errors.Wrapf(err, "failed to scan blocks %d-%d", start, end)
		}

		for _, block := range batch {
			for _, tx := range ParseBlock(block) {
				if tx.To == address {
					matched = append(matched, tx)
				}
			}
		}

		start = end + 1
	}

	// 全部批次成功后游标才一次性推进到链头
	if err := s.cursors.SetCursor(ctx, address, headNum); err != nil {
		return nil, errors.Wrap(err, "failed to advance scan cursor")
	}

	log.Debug().Int64("head", headNum).Int("matched", len(matched)).Msg("Scan round done")

	return matched, nil
}

// fetchBatch 并发拉取 [from, to] 的区块, 任一失败则整批失败.
func (s *scanner) fetchBatch(ctx context.Context, from int64, to int64) ([]*tron.Block, error) {
	blocks := make([]*tron.Block, to-from+1)

	g, ctx := errgroup.WithContext(ctx)
	for num := from; num <= to; num++ {
		g.Go(func() error {
			block, err := s.client.GetBlockByNum(ctx, num)
			if err != nil {
				return err
			}
			blocks[num-from] = block

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return blocks, nil
}
