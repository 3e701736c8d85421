// Package shape 提供攻击形状（Footprint）的定义与构建
//
// Footprint 是一个边长为奇数的方形掩码，记录哪些格子被攻击覆盖。
// 它从"涂色网格"派生：每个格子的 alpha 大于 0.5 即视为占用（单元格方案）。
// 构建完成后不可修改，多个放置实例可以共享同一个 Footprint。
package shape

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gonewx/rangers/pkg/types"
)

// OccupiedAlphaThreshold alpha 超过该值的格子视为占用
const OccupiedAlphaThreshold = 0.5

var (
	// ErrEmptyGrid 涂色网格为空
	ErrEmptyGrid = errors.New("paint grid is empty")
	// ErrNotSquare 涂色网格不是正方形
	ErrNotSquare = errors.New("paint grid is not square")
	// ErrEvenSize 涂色网格边长为偶数，无法确定唯一中心
	ErrEvenSize = errors.New("paint grid size must be odd")
)

// PaintColor 涂色网格中单个格子的颜色，分量范围 0.0 ~ 1.0
type PaintColor struct {
	R, G, B, A float64
}

// PaintGrid 涂色网格，按 [y][x] 访问
type PaintGrid [][]PaintColor

// Footprint 攻击形状的占用掩码
type Footprint struct {
	id    string
	size  int
	mask  []bool        // 行优先，长度 size*size
	cells []types.Coord // 占用格子的局部坐标，行优先顺序
}

// FromPaintGrid 从涂色网格构建攻击形状
//
// 参数：
//   - id: 形状ID
//   - grid: N×N 涂色网格，N 必须为奇数
//
// 返回：
//   - *Footprint: 构建好的形状
//   - error: 网格为空、非正方形或边长为偶数时返回错误
func FromPaintGrid(id string, grid PaintGrid) (*Footprint, error) {
	n := len(grid)
	if n == 0 {
		return nil, fmt.Errorf("shape %q: %w", id, ErrEmptyGrid)
	}
	for y, row := range grid {
		if len(row) != n {
			return nil, fmt.Errorf("shape %q: row %d has %d cells, want %d: %w", id, y, len(row), n, ErrNotSquare)
		}
	}
	if n%2 == 0 {
		return nil, fmt.Errorf("shape %q: size %d: %w", id, n, ErrEvenSize)
	}

	fp := &Footprint{
		id:   id,
		size: n,
		mask: make([]bool, n*n),
	}
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if grid[y][x].A > OccupiedAlphaThreshold {
				fp.mask[y*n+x] = true
				fp.cells = append(fp.cells, types.Coord{X: x, Y: y})
			}
		}
	}
	return fp, nil
}

// FromRows 从字符行构建攻击形状
// '.' 和空格表示空格子，其他任意字符表示占用
func FromRows(id string, rows ...string) (*Footprint, error) {
	grid := make(PaintGrid, len(rows))
	for y, row := range rows {
		runes := []rune(row)
		grid[y] = make([]PaintColor, len(runes))
		for x, r := range runes {
			if r != '.' && r != ' ' {
				grid[y][x] = PaintColor{R: 1, G: 1, B: 1, A: 1}
			}
		}
	}
	return FromPaintGrid(id, grid)
}

// MustFromRows 与 FromRows 相同，出错时 panic
// 仅用于测试和静态数据
func MustFromRows(id string, rows ...string) *Footprint {
	fp, err := FromRows(id, rows...)
	if err != nil {
		panic(err)
	}
	return fp
}

// ID 返回形状ID
func (f *Footprint) ID() string {
	return f.id
}

// Size 返回边长 N
func (f *Footprint) Size() int {
	return f.size
}

// Center 返回中心格子 (N/2, N/2)
// 拖放时以该格子对准目标格子
func (f *Footprint) Center() types.Coord {
	return types.Coord{X: f.size / 2, Y: f.size / 2}
}

// BaseFor 将拖放目标格子换算为放置基准偏移：target - Center()
func (f *Footprint) BaseFor(target types.Coord) types.Coord {
	return target.Sub(f.Center())
}

// Cells 返回占用格子的局部坐标副本（行优先顺序）
func (f *Footprint) Cells() []types.Coord {
	out := make([]types.Coord, len(f.cells))
	copy(out, f.cells)
	return out
}

// OccupiedCount 返回占用格子数量
func (f *Footprint) OccupiedCount() int {
	return len(f.cells)
}

// Occupies 判断局部坐标是否被占用，越界返回 false
func (f *Footprint) Occupies(local types.Coord) bool {
	if local.X < 0 || local.Y < 0 || local.X >= f.size || local.Y >= f.size {
		return false
	}
	return f.mask[local.Y*f.size+local.X]
}

// Covers 判断以 base 为基准放置时是否覆盖世界坐标 c
func (f *Footprint) Covers(base, c types.Coord) bool {
	return f.Occupies(c.Sub(base))
}

// Equal 按边长和占用格子集合比较两个形状，忽略ID
func (f *Footprint) Equal(other *Footprint) bool {
	if f == nil || other == nil {
		return f == other
	}
	if f.size != other.size {
		return false
	}
	for i := range f.mask {
		if f.mask[i] != other.mask[i] {
			return false
		}
	}
	return true
}

// String 返回 ASCII 表示，'#' 为占用，'.' 为空
func (f *Footprint) String() string {
	var sb strings.Builder
	for y := 0; y < f.size; y++ {
		for x := 0; x < f.size; x++ {
			if f.mask[y*f.size+x] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		if y < f.size-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
