// Package utils 提供通用工具函数
package utils

import "math"

// Rect 轴对齐矩形，(X, Y) 为左上角，单位像素
type Rect struct {
	X, Y, W, H float64
}

// Right 返回右边界
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom 返回下边界
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Intersects 判断两个矩形是否重叠
// 只有边相接（例如角色正好站在平台上）不算重叠
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() &&
		r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Center 返回矩形中心
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// IsFinite 当所有参数都不是 NaN 或 ±Inf 时返回 true
func IsFinite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Sign 返回 v 的符号：-1、0 或 1
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
