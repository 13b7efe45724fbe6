package fetch

import (
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/net/proxy"
)

// SetProxy routes requests through an HTTP/HTTPS or SOCKS5 proxy.
// An empty address restores the default transport.
func (f *HTTPFetcher) SetProxy(proxyAddr string) error {
	if proxyAddr == "" {
		f.client.Transport = defaultTransport()
		f.proxy = ""
		return nil
	}

	u, err := url.Parse(proxyAddr)
	if err != nil {
		return fmt.Errorf("parse proxy url: %w", err)
	}

	base := defaultTransport()

	switch u.Scheme {
	case "http", "https":
		base.Proxy = http.ProxyURL(u)
	case "socks5":
		var auth *proxy.Auth
		if u.User != nil {
			pass, _ := u.User.Password()
			auth = &proxy.Auth{User: u.User.Username(), Password: pass}
		}
		dialer, err := proxy.SOCKS5("tcp", u.Host, auth, proxy.Direct)
		if err != nil {
			return fmt.Errorf("socks5 proxy: %w", err)
		}
		dc, ok := dialer.(proxy.ContextDialer)
		if !ok {
			return fmt.Errorf("socks5: context dialer not supported")
		}
		base.Proxy = nil
		base.DialContext = dc.DialContext
	default:
		return fmt.Errorf("unsupported proxy scheme: %s", u.Scheme)
	}

	f.client.Transport = base
	f.proxy = proxyAddr
	return nil
}
