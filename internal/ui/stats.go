package ui

import (
	"fmt"
	"sync/atomic"
)

type Stats struct {
	TotalPages  atomic.Int64
	TotalImages atomic.Int64
	TotalBytes  atomic.Int64
}

func BytesHuman(n int64) string {
	switch {
	case n >= 1<<30:
		return fmt.Sprintf("%.2f GB", float64(n)/(1<<30))
	case n >= 1<<20:
		return fmt.Sprintf("%.2f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.2f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
