package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"pktverify/internal/verify"
	"pktverify/pkg/model"
)

type verifyRequest struct {
	TransmitLog string `json:"transmit_log"`
	ReceiveLog  string `json:"receive_log"`
	Format      string `json:"format"`
	PcapUnit    string `json:"pcap_unit"`
	Protocol    string `json:"protocol"`
	Port        uint16 `json:"port"`
	Table       string `json:"table"`
}

type Handlers struct {
	verifier verify.Verifier
	baseDir  string
}

func NewHandlers(v verify.Verifier, baseDir string) *Handlers {
	return &Handlers{verifier: v, baseDir: baseDir}
}

func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Verify 成功返回 200 + 统计结果；校验不通过返回 422 + {"error": ...}。
func (h *Handlers) Verify(c *gin.Context) {
	var body verifyRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, model.Failed("JSON 解析失败："+err.Error()))
		return
	}

	txPath, err := h.resolve(body.TransmitLog)
	if err != nil {
		c.JSON(http.StatusBadRequest, model.Failed(err.Error()))
		return
	}
	rxPath, err := h.resolve(body.ReceiveLog)
	if err != nil {
		c.JSON(http.StatusBadRequest, model.Failed(err.Error()))
		return
	}

	req, err := verify.NewRequest(txPath, rxPath, verify.Options{
		Format:   body.Format,
		PcapUnit: body.PcapUnit,
		Protocol: body.Protocol,
		Port:     body.Port,
		Table:    body.Table,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, model.Failed(err.Error()))
		return
	}

	res := h.verifier.Verify(c.Request.Context(), req)
	if !res.Success {
		slog.Info("校验失败", "transmit_log", req.TransmitLog, "receive_log", req.ReceiveLog, "error", res.Error)
		c.JSON(http.StatusUnprocessableEntity, res)
		return
	}
	slog.Debug("校验通过", "transmit_log", req.TransmitLog, "packets", res.Report.PacketCount)
	c.JSON(http.StatusOK, res)
}

// resolve 把相对路径挂到 baseDir 下；空路径原样返回，交给 verify 报缺参。
// 设置了 baseDir 时只允许其内部的相对路径，否则错误信息会把任意文件的内容带回给调用方。
func (h *Handlers) resolve(p string) (string, error) {
	if p == "" || h.baseDir == "" {
		return p, nil
	}
	if filepath.IsAbs(p) {
		return "", fmt.Errorf("路径必须是相对 base dir 的相对路径：%s", p)
	}
	full := filepath.Join(h.baseDir, p)
	rel, err := filepath.Rel(h.baseDir, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("路径越出 base dir：%s", p)
	}
	return full, nil
}
