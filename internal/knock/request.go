// Package knock sends single packet authorization knocks through the fwknop
// client binary.
package knock

import (
	"strconv"
	"strings"
)

// Request carries everything needed to knock one or more hosts.
type Request struct {
	Hosts         []string
	EncryptionKey string
	AllowIP       string
	// AccessPorts is the fwknop -A list, e.g. "tcp/22,udp/53".
	AccessPorts string
	// ServerPort is omitted from the command line when 0.
	ServerPort int
	Verbose    bool
}

// ResolveHosts turns a destination into host names. A fixed destination is
// split on ';'. Otherwise value is the form value: dropdown keys that are
// integer strings index into destinations and other keys are used verbatim,
// while typed text is split on ';'. With destinations configured a single
// string is one dropdown key. Blank hosts are dropped.
func ResolveHosts(fixed string, value any, destinations []string) []string {
	if strings.TrimSpace(fixed) != "" {
		return splitHosts(fixed)
	}

	switch v := value.(type) {
	case []string:
		return resolveKeys(v, destinations)
	case string:
		if len(destinations) > 0 {
			return resolveKeys([]string{v}, destinations)
		}
		return splitHosts(v)
	}
	return nil
}

func resolveKeys(keys, destinations []string) []string {
	var hosts []string
	for _, key := range keys {
		if n, err := strconv.Atoi(key); err == nil && strconv.Itoa(n) == key {
			if n >= 0 && n < len(destinations) {
				hosts = appendHost(hosts, destinations[n])
			}
			continue
		}
		hosts = appendHost(hosts, key)
	}
	return hosts
}

func splitHosts(raw string) []string {
	var hosts []string
	for _, part := range strings.Split(raw, ";") {
		hosts = appendHost(hosts, part)
	}
	return hosts
}

func appendHost(hosts []string, host string) []string {
	if host = strings.TrimSpace(host); host != "" {
		return append(hosts, host)
	}
	return hosts
}

// Args builds the fwknop argument list for one host.
func Args(req Request, host, passwordFile string) []string {
	var args []string
	if req.Verbose {
		args = append(args, "--verbose")
	}
	args = append(args, "-G", passwordFile)
	if req.ServerPort > 0 {
		args = append(args, "--server-port", strconv.Itoa(req.ServerPort))
	}
	if ports := strings.ReplaceAll(req.AccessPorts, " ", ""); ports != "" {
		args = append(args, "-A", ports)
	}
	args = append(args, "-a", req.AllowIP, "-D", host)
	return args
}
