// Package netutil предоставляет утилиты для работы с сетью.
package netutil

import (
	"fmt"
	"net"
)

// OutboundIP возвращает локальный IP-адрес, с которого хост пошёл бы к target ("host:port").
//
// UDP-«соединение» ничего не отправляет: ядро только выбирает маршрут и интерфейс.
// Для сервера на loopback это будет 127.0.0.1, для удалённого - адрес нужного интерфейса,
// то есть ровно то значение, которое сервер сверяет с доверенной подсетью.
func OutboundIP(target string) (net.IP, error) {
	conn, err := net.Dial("udp", target)
	if err != nil {
		return nil, fmt.Errorf("failed to determine outbound IP for %s: %w", target, err)
	}
	defer conn.Close()

	localAddr, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok {
		return nil, fmt.Errorf("unexpected local address type %T", conn.LocalAddr())
	}
	return localAddr.IP, nil
}

// ResolveRealIP turns the configured X-Real-IP value into a header value.
// "auto" asks the routing table; anything else is returned as is.
func ResolveRealIP(configured, target string) (string, error) {
	if configured != "auto" {
		return configured, nil
	}
	ip, err := OutboundIP(target)
	if err != nil {
		return "", err
	}
	return ip.String(), nil
}
