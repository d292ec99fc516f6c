package latency

import (
	"fmt"
	"math/big"
	"sort"
)

// Mean 返回算术平均值，结果为精确有理数就近舍入到 float64。
func Mean(data []int64) (float64, error) {
	if len(data) == 0 {
		return 0, &InsufficientDataError{Count: 0, Required: 1}
	}
	sum := new(big.Int)
	for _, v := range data {
		sum.Add(sum, big.NewInt(v))
	}
	return ratio(sum, int64(len(data))), nil
}

// Median 偶数个样本时取中间两个的平均值。
func Median(data []int64) (float64, error) {
	n := len(data)
	if n == 0 {
		return 0, &InsufficientDataError{Count: 0, Required: 1}
	}
	s := sorted(data)
	if n%2 == 1 {
		return float64(s[n/2]), nil
	}
	pair := new(big.Int).Add(big.NewInt(s[n/2-1]), big.NewInt(s[n/2]))
	return ratio(pair, 2), nil
}

// Quantiles 把分布等概率切成 n 份，返回 n-1 个切点。
// 采用 exclusive 方法：样本视为落在 m=len+1 个等距位置上，切点在相邻样本间线性插值；
// 插值分子用 big.Int 精确计算（样本乘权重会超出 int64），最后一次除法才落到 float64，和既有报表逐位一致。
func Quantiles(data []int64, n int) ([]float64, error) {
	if n < 1 {
		return nil, fmt.Errorf("n must be at least 1, got %d", n)
	}
	ld := len(data)
	if ld < 2 {
		return nil, &InsufficientDataError{Count: ld, Required: 2}
	}
	s := sorted(data)
	m := ld + 1
	out := make([]float64, 0, n-1)
	for i := 1; i < n; i++ {
		j := i * m / n
		if j < 1 {
			j = 1
		} else if j > ld-1 {
			j = ld - 1
		}
		delta := i*m - j*n
		lo := new(big.Int).Mul(big.NewInt(s[j-1]), big.NewInt(int64(n-delta)))
		hi := new(big.Int).Mul(big.NewInt(s[j]), big.NewInt(int64(delta)))
		out = append(out, ratio(lo.Add(lo, hi), int64(n)))
	}
	return out, nil
}

// Percentile999 是 Quantiles(data, 1000) 的最后一个切点。
func Percentile999(data []int64) (float64, error) {
	q, err := Quantiles(data, 1000)
	if err != nil {
		return 0, err
	}
	return q[len(q)-1], nil
}

func sorted(data []int64) []int64 {
	s := make([]int64, len(data))
	copy(s, data)
	sort.Slice(s, func(i, j int) bool { return s[i] < s[j] })
	return s
}

func ratio(num *big.Int, den int64) float64 {
	f, _ := new(big.Rat).SetFrac(num, big.NewInt(den)).Float64()
	return f
}
