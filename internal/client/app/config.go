package app

import "pktverify/internal/verify"

type Config struct {
	TransmitLog string
	ReceiveLog  string
	Output      string // "json" / "table"
	Options     verify.Options
	// ArgsFile 非空时按 Ansible 二进制模块约定运行：从该 JSON 文件读参数，输出模块外壳。
	ArgsFile string
}
