package category

import "sync/atomic"

// Store 持有当前生效的规则表
// 规则表本身不可变；配置重载时构建新表后整表原子替换，
// 进行中的操作继续使用替换前的旧表，不会观察到半更新状态
type Store struct {
	table atomic.Pointer[Table]
}

// NewStore 以给定规则表创建 Store
func NewStore(t *Table) *Store {
	s := &Store{}
	s.table.Store(t)
	return s
}

// Load 返回当前生效的规则表
func (s *Store) Load() *Table {
	return s.table.Load()
}

// Swap 原子替换规则表
func (s *Store) Swap(t *Table) {
	s.table.Store(t)
}
