package outbound

import (
	"context"
	"net"
)

// Outbound 出站接口，用于下载规则数据
type Outbound interface {
	Dial(ctx context.Context, network, address string) (net.Conn, error)
}

// New 根据 SOCKS5 地址创建出站，地址为空时直连
func New(socks5Addr, username, password string) (Outbound, error) {
	if socks5Addr == "" {
		return NewDirectOutbound(), nil
	}
	return NewSOCKS5Outbound(socks5Addr, username, password)
}
