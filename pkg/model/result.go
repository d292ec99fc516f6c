package model

import "encoding/json"

// Report 是校验通过时的结果。
type Report struct {
	PacketCount   int     `json:"packet_count"`
	MeanLatency   float64 `json:"mean_latency"`
	MedianLatency float64 `json:"median_latency"`
	P999Latency   float64 `json:"99.9_latency"`
	Latencies     []int64 `json:"latencies"`
}

// Result 要么是 Report，要么是一条错误信息。
type Result struct {
	Success bool
	Report  *Report
	Error   string
}

func Succeeded(r Report) Result {
	return Result{Success: true, Report: &r}
}

func Failed(msg string) Result {
	return Result{Error: msg}
}

type failure struct {
	Error string `json:"error"`
}

func (r Result) MarshalJSON() ([]byte, error) {
	if !r.Success || r.Report == nil {
		return json.Marshal(failure{Error: r.Error})
	}
	return json.Marshal(r.Report)
}

func (r *Result) UnmarshalJSON(b []byte) error {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(b, &probe); err != nil {
		return err
	}
	if raw, ok := probe["error"]; ok {
		*r = Result{}
		return json.Unmarshal(raw, &r.Error)
	}
	var rep Report
	if err := json.Unmarshal(b, &rep); err != nil {
		return err
	}
	*r = Succeeded(rep)
	return nil
}

// ModuleOutput 是 Ansible 二进制模块约定的输出外壳。
type ModuleOutput struct {
	Changed bool    `json:"changed"`
	Failed  bool    `json:"failed,omitempty"`
	Msg     string  `json:"msg,omitempty"`
	Result  *Report `json:"result,omitempty"`
}

func Envelope(r Result) ModuleOutput {
	if !r.Success || r.Report == nil {
		return ModuleOutput{Failed: true, Msg: r.Error}
	}
	return ModuleOutput{Result: r.Report}
}

// ModuleArgs 是 Ansible 传给模块的参数文件内容。
type ModuleArgs struct {
	TransmitLog string `json:"transmit_log"`
	ReceiveLog  string `json:"receive_log"`
	Format      string `json:"format,omitempty"`
}
