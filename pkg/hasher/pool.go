package hasher

import (
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/spf13/afero"

	"github.com/moyu-x/folder-manager/pkg/logger"
)

// taskBuffer 任务与结果通道的缓冲大小
const taskBuffer = 256

// Task 一个待计算哈希的文件
type Task struct {
	Path string
	Size int64
}

// Result 单个文件的哈希计算结果
type Result struct {
	Path   string
	Digest string
	Size   int64
	Err    error
}

// Pool 基于 goroutine 池的并发哈希计算器
// 用于目录分析中的重复文件分组，单次分析创建一个池，用完即关闭
type Pool struct {
	fs      afero.Fs
	workers int
	tasks   chan Task
	results chan Result
	wg      sync.WaitGroup
	pool    *ants.Pool
}

// NewPool 创建哈希计算池
func NewPool(fs afero.Fs, workers int) *Pool {
	return &Pool{
		fs:      fs,
		workers: workers,
		tasks:   make(chan Task, taskBuffer),
		results: make(chan Result, taskBuffer),
	}
}

// Start 启动工作协程
func (p *Pool) Start() error {
	logger.Get().Debug().Int("workers", p.workers).Msg("启动哈希计算池")

	pool, err := ants.NewPool(p.workers)
	if err != nil {
		return err
	}
	p.pool = pool

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		if err := p.pool.Submit(p.worker); err != nil {
			p.wg.Done()
			return err
		}
	}
	return nil
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		digest, err := FastSum(p.fs, task.Path)
		p.results <- Result{
			Path:   task.Path,
			Digest: digest,
			Size:   task.Size,
			Err:    err,
		}
	}
}

// Add 提交一个哈希任务
func (p *Pool) Add(task Task) {
	p.tasks <- task
}

// Results 返回结果通道，Close 之后通道会被关闭
func (p *Pool) Results() <-chan Result {
	return p.results
}

// Close 关闭任务通道，等待所有工作协程退出后释放池并关闭结果通道
func (p *Pool) Close() {
	close(p.tasks)
	p.wg.Wait()

	if p.pool != nil {
		p.pool.Release()
	}
	close(p.results)
}
