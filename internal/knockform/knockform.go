// Package knockform builds the knock form from the server configuration and
// turns a validated form into a knock request.
package knockform

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/goliatone/go-knock/internal/config"
	"github.com/goliatone/go-knock/internal/knock"
	"github.com/goliatone/go-knock/pkg/form"
)

// FormName is the name of the knock form.
const FormName = "knock"

// Element names.
const (
	Destination    = "destination"
	ServerPort     = "serverPort"
	AccessPortList = "accessPortList"
	EncryptionKey  = "encryptionKey"
	AllowIP        = "allowIp"
	DoKnock        = "doKnock"
)

// Validation patterns for the text inputs.
const (
	AccessPortPattern = `(?i)^(tcp|udp)/[0-9]+( *, *(tcp|udp)/[0-9]+)*$`
	IPv4Pattern       = `^(?:[1-9]?\d|1\d\d|2[0-4]\d|25[0-5])(?:\.(?:[1-9]?\d|1\d\d|2[0-4]\d|25[0-5])){3}$`
)

// MaxDestinationRows caps the visible rows of the destination dropdown.
const MaxDestinationRows = 20

// Build creates the knock form. Settings fixed by cfg are left out of the
// form; everything else is asked for. remoteAddr seeds the source IP and may
// carry a port.
func Build(cfg *config.Config, remoteAddr string, options ...form.FormOption) (*form.Form, error) {
	f := form.New(FormName, options...)

	switch {
	case cfg.Destination != "":
	case len(cfg.Destinations) > 0:
		dest, err := form.Add[*form.Dropdown](f, form.TypeDropdown, Destination, "Server", cfg.Destinations)
		if err != nil {
			return nil, err
		}
		dest.SetMaximumSize(MaxDestinationRows)
		dest.SetIsMultiple(true)
		dest.SetNotNull(true)
	default:
		dest, err := f.AddElement(form.TypeText, Destination, "Server IP/Hostname")
		if err != nil {
			return nil, err
		}
		dest.SetHint("You may enter multiple server IPs or hostnames separated by a semicolon.")
		dest.SetNotNull(true)
	}

	if cfg.AskServerPort() {
		port, err := form.Add[*form.Integer](f, form.TypeInteger, ServerPort, "Server port")
		if err != nil {
			return nil, err
		}
		port.SetMinimum(1)
		port.SetMaximum(65535)
	}

	if cfg.AskAccessPorts() {
		ports, err := form.Add[*form.Text](f, form.TypeText, AccessPortList, "Access port list")
		if err != nil {
			return nil, err
		}
		ports.SetHint(`Provide a list of ports and protocols to access on a remote computer. The format of this list is "<proto>/<port>...<proto>/<port>", e.g. "tcp/22,udp/53".`)
		if err := ports.SetPattern(AccessPortPattern); err != nil {
			return nil, err
		}
	}

	if cfg.AskEncryptionKey() {
		if _, err := f.AddElement(form.TypePassword, EncryptionKey, "Encryption key"); err != nil {
			return nil, err
		}
	}

	ip, err := form.Add[*form.Text](f, form.TypeText, AllowIP, "Source IP")
	if err != nil {
		return nil, err
	}
	if host := RemoteIP(remoteAddr); host != "" {
		ip.SetDefaultValue(host)
	}
	if err := ip.SetPattern(IPv4Pattern); err != nil {
		return nil, err
	}
	ip.SetNotNull(true)

	knockFlag := form.NewHidden(DoKnock)
	knockFlag.SetDefaultValue("1")
	if err := f.Register(knockFlag); err != nil {
		return nil, err
	}
	return f, nil
}

// RemoteIP strips the port from a request remote address.
func RemoteIP(remoteAddr string) string {
	remoteAddr = strings.TrimSpace(remoteAddr)
	if host, _, err := net.SplitHostPort(remoteAddr); err == nil {
		return host
	}
	return remoteAddr
}

// Submitted reports whether the form was posted with the knock flag set.
func Submitted(f *form.Form) bool {
	el := f.Element(DoKnock)
	if el == nil {
		return false
	}
	s, ok := el.Value().(string)
	return ok && s == "1"
}

// Request converts the storage values of a validated form into a knock
// request. Settings fixed by cfg take precedence over form values.
func Request(cfg *config.Config, f *form.Form) (knock.Request, error) {
	values := f.DbValues()

	req := knock.Request{
		EncryptionKey: cfg.EncryptionKey,
		AccessPorts:   cfg.AccessPortList,
		ServerPort:    cfg.ServerPort,
		AllowIP:       strings.TrimSpace(values.Text(AllowIP)),
		Verbose:       cfg.Verbose,
	}
	if cfg.AskEncryptionKey() {
		req.EncryptionKey = values.Text(EncryptionKey)
	}
	if cfg.AskAccessPorts() {
		req.AccessPorts = strings.TrimSpace(values.Text(AccessPortList))
	}
	if cfg.AskServerPort() {
		if raw := strings.TrimSpace(values.Text(ServerPort)); raw != "" {
			port, err := strconv.Atoi(raw)
			if err != nil {
				return knock.Request{}, fmt.Errorf("knockform: server port %q: %w", raw, err)
			}
			req.ServerPort = port
		}
	}

	destination, _ := values.Get(Destination)
	req.Hosts = knock.ResolveHosts(cfg.Destination, destination, cfg.Destinations)
	if len(req.Hosts) == 0 {
		return knock.Request{}, knock.ErrNoHosts
	}
	return req, nil
}
