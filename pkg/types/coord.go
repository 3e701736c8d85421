package types

import "fmt"

// Coord 网格坐标
// 网格在概念上是无界的，UI 只渲染其中固定的可见窗口（如 15x15）
type Coord struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// orthogonalDirs 四个正交方向：上、下、左、右（不含对角线）
var orthogonalDirs = [4]Coord{
	{X: 0, Y: 1},
	{X: 0, Y: -1},
	{X: -1, Y: 0},
	{X: 1, Y: 0},
}

// Add 返回 c + o
func (c Coord) Add(o Coord) Coord {
	return Coord{X: c.X + o.X, Y: c.Y + o.Y}
}

// Sub 返回 c - o
func (c Coord) Sub(o Coord) Coord {
	return Coord{X: c.X - o.X, Y: c.Y - o.Y}
}

// Neighbors4 返回四个正交相邻格子
func (c Coord) Neighbors4() [4]Coord {
	var out [4]Coord
	for i, d := range orthogonalDirs {
		out[i] = c.Add(d)
	}
	return out
}

// Less 按 (Y, X) 排序，用于输出稳定的坐标列表
func (c Coord) Less(o Coord) bool {
	if c.Y != o.Y {
		return c.Y < o.Y
	}
	return c.X < o.X
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}
