package outbound

import (
	"context"
	"net"
	"time"
)

// DirectOutbound 直连出站
type DirectOutbound struct {
	dialer net.Dialer
}

// NewDirectOutbound 创建直连出站
func NewDirectOutbound() *DirectOutbound {
	return &DirectOutbound{
		dialer: net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		},
	}
}

// Dial 建立 TCP 连接
func (o *DirectOutbound) Dial(ctx context.Context, network, address string) (net.Conn, error) {
	return o.dialer.DialContext(ctx, network, address)
}

// String 返回出站名称
func (o *DirectOutbound) String() string {
	return "direct"
}
