package filter

import (
	"fmt"
	"strings"

	"golang.org/x/net/bpf"
)

type Protocol uint32

const (
	TCP Protocol = 6
	UDP Protocol = 17
)

func ParseProtocol(s string) (Protocol, error) {
	switch strings.ToLower(s) {
	case "tcp":
		return TCP, nil
	case "udp":
		return UDP, nil
	case "", "none":
		return 0, nil
	default:
		return 0, fmt.Errorf("不支持的协议：%s", s)
	}
}

// PortBPF 生成 classic BPF（cBPF）过滤器，假设链路层为 Ethernet：
//   - 只放行 IPv4
//   - 只放行指定传输层协议
//   - port 非 0 时只放行 src port=port 或 dst port=port
//
// IPv4 头部长度不固定（options），因此用 LoadMemShift 取 X = 4*(ip[0]&0x0f)，
// 再读 src=[14+X]、dst=[14+X+2]。
func PortBPF(proto Protocol, port uint16) []bpf.Instruction {
	if port == 0 {
		return []bpf.Instruction{
			bpf.LoadAbsolute{Off: 12, Size: 2},
			bpf.JumpIf{Cond: bpf.JumpEqual, Val: 0x0800, SkipFalse: 3},
			bpf.LoadAbsolute{Off: 23, Size: 1},
			bpf.JumpIf{Cond: bpf.JumpEqual, Val: uint32(proto), SkipFalse: 1},
			bpf.RetConstant{Val: 0xFFFF},
			bpf.RetConstant{Val: 0},
		}
	}
	return []bpf.Instruction{
		bpf.LoadAbsolute{Off: 12, Size: 2},                         // EtherType
		bpf.JumpIf{Cond: bpf.JumpEqual, Val: 0x0800, SkipFalse: 7}, // IPv4? 否则 drop

		bpf.LoadAbsolute{Off: 23, Size: 1},                                // IPv4 protocol
		bpf.JumpIf{Cond: bpf.JumpEqual, Val: uint32(proto), SkipFalse: 5}, // 协议不符 -> drop
		bpf.LoadMemShift{Off: 14},                                         // X = 4*(ip[0]&0xf)

		bpf.LoadIndirect{Off: 14, Size: 2},                              // src port
		bpf.JumpIf{Cond: bpf.JumpEqual, Val: uint32(port), SkipTrue: 3}, // src==port -> accept
		bpf.LoadIndirect{Off: 16, Size: 2},                              // dst port
		bpf.JumpIf{Cond: bpf.JumpEqual, Val: uint32(port), SkipTrue: 1}, // dst==port -> accept

		bpf.RetConstant{Val: 0},
		bpf.RetConstant{Val: 0xFFFF},
	}
}

// Matcher 在用户态用 bpf.VM 跑同一段过滤器，离线读 pcap 时没有内核可挂。
type Matcher struct {
	vm *bpf.VM
}

func NewMatcher(proto Protocol, port uint16) (*Matcher, error) {
	vm, err := bpf.NewVM(PortBPF(proto, port))
	if err != nil {
		return nil, fmt.Errorf("构造 BPF VM 失败：%w", err)
	}
	return &Matcher{vm: vm}, nil
}

func (m *Matcher) Match(frame []byte) (bool, error) {
	n, err := m.vm.Run(frame)
	if err != nil {
		return false, fmt.Errorf("执行 BPF 失败：%w", err)
	}
	return n > 0, nil
}
