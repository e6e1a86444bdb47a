package outbound

import (
	"context"
	"fmt"
	"net"

	"golang.org/x/net/proxy"
)

// SOCKS5Outbound SOCKS5 代理出站
type SOCKS5Outbound struct {
	address string
	dialer  proxy.Dialer
}

// NewSOCKS5Outbound 创建 SOCKS5 出站，address 形如 host:port
func NewSOCKS5Outbound(address, username, password string) (*SOCKS5Outbound, error) {
	var auth *proxy.Auth
	if username != "" {
		auth = &proxy.Auth{
			User:     username,
			Password: password,
		}
	}

	dialer, err := proxy.SOCKS5("tcp", address, auth, proxy.Direct)
	if err != nil {
		return nil, fmt.Errorf("创建 SOCKS5 dialer 失败: %w", err)
	}

	return &SOCKS5Outbound{
		address: address,
		dialer:  dialer,
	}, nil
}

// Dial 经 SOCKS5 建立 TCP 连接
func (o *SOCKS5Outbound) Dial(ctx context.Context, network, address string) (net.Conn, error) {
	if cd, ok := o.dialer.(proxy.ContextDialer); ok {
		return cd.DialContext(ctx, network, address)
	}
	return o.dialer.Dial(network, address)
}

// String 返回代理地址
func (o *SOCKS5Outbound) String() string {
	return "socks5://" + o.address
}
