package eventlog

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
	"github.com/pkg/errors"

	"pktverify/internal/eventlog/filter"
	"pktverify/pkg/model"
)

// TimeUnit 决定 pcap 抓包时间如何折算成整数 timestamp。
type TimeUnit string

const (
	Nanoseconds  TimeUnit = "ns"
	Microseconds TimeUnit = "us"
	Milliseconds TimeUnit = "ms"
)

func ParseTimeUnit(s string) (TimeUnit, error) {
	switch u := TimeUnit(strings.ToLower(s)); u {
	case Nanoseconds, Microseconds, Milliseconds:
		return u, nil
	case "":
		return Microseconds, nil
	default:
		return "", fmt.Errorf("不支持的时间单位：%s", s)
	}
}

func (u TimeUnit) convert(t time.Time) int64 {
	switch u {
	case Nanoseconds:
		return t.UnixNano()
	case Milliseconds:
		return t.UnixMilli()
	default:
		return t.UnixMicro()
	}
}

type PcapOptions struct {
	Unit TimeUnit
	// Protocol 为 0 时不装 BPF 过滤器；Port 为 0 表示不限端口。
	Protocol filter.Protocol
	Port     uint16
}

// ReadPcap 把抓包文件当作事件日志读：每个带非空 TCP/UDP payload 的包产出一条 Event，
// ByteCount 取传输层 payload 长度，收发两端头部不同也能对上。
func ReadPcap(path string, opts PcapOptions) ([]model.Event, error) {
	f, err := openLog(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := pcapgo.NewReader(f)
	if err != nil {
		return nil, errors.Wrapf(err, "parse pcap header %s", path)
	}

	var m *filter.Matcher
	if opts.Protocol != 0 {
		if r.LinkType() != layers.LinkTypeEthernet {
			return nil, fmt.Errorf("BPF 过滤仅支持 Ethernet 链路层，当前为 %s", r.LinkType())
		}
		if m, err = filter.NewMatcher(opts.Protocol, opts.Port); err != nil {
			return nil, err
		}
	}

	out := make([]model.Event, 0, 1024)
	for {
		data, ci, err := r.ReadPacketData()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "read packet %d of %s", len(out)+1, path)
		}
		if m != nil {
			ok, err := m.Match(data)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
		}

		packet := gopacket.NewPacket(data, r.LinkType(), gopacket.NoCopy)
		tl := packet.TransportLayer()
		if tl == nil {
			continue
		}
		payload := tl.LayerPayload()
		if len(payload) == 0 {
			continue
		}
		out = append(out, model.Event{
			Timestamp: opts.Unit.convert(ci.Timestamp),
			ByteCount: int64(len(payload)),
		})
	}
	return out, nil
}
