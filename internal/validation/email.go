package validation

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

var errInvalidEmail = errors.New("invalid email address")

// mailProvider describes how a mailbox provider aliases addresses.
type mailProvider struct {
	// subaddress separates the mailbox from a tag; 0 keeps the local part.
	subaddress byte
	// lastTagOnly drops only the final tag segment.
	lastTagOnly bool
	removeDots  bool
	// domain replaces the host when set.
	domain string
}

var (
	gmail   = mailProvider{subaddress: '+', removeDots: true, domain: "gmail.com"}
	outlook = mailProvider{subaddress: '+'}
	yahoo   = mailProvider{subaddress: '-', lastTagOnly: true}
	icloud  = mailProvider{subaddress: '+'}
	yandex  = mailProvider{domain: "yandex.ru"}
)

var mailProviders = make(map[string]mailProvider)

func register(p mailProvider, domains ...string) {
	for _, d := range domains {
		mailProviders[d] = p
	}
}

func init() {
	register(gmail, "gmail.com", "googlemail.com")
	register(outlook,
		"hotmail.at", "hotmail.be", "hotmail.ca", "hotmail.cl", "hotmail.co.il", "hotmail.co.nz",
		"hotmail.co.th", "hotmail.co.uk", "hotmail.com", "hotmail.com.ar", "hotmail.com.au",
		"hotmail.com.br", "hotmail.com.gr", "hotmail.com.mx", "hotmail.com.pe", "hotmail.com.tr",
		"hotmail.com.vn", "hotmail.cz", "hotmail.de", "hotmail.dk", "hotmail.es", "hotmail.fr",
		"hotmail.hu", "hotmail.id", "hotmail.ie", "hotmail.in", "hotmail.it", "hotmail.jp",
		"hotmail.kr", "hotmail.lv", "hotmail.my", "hotmail.ph", "hotmail.pt", "hotmail.sa",
		"hotmail.sg", "hotmail.sk", "live.be", "live.co.uk", "live.com", "live.com.ar",
		"live.com.mx", "live.de", "live.es", "live.eu", "live.fr", "live.it", "live.nl", "msn.com",
		"outlook.at", "outlook.be", "outlook.cl", "outlook.co.il", "outlook.co.nz", "outlook.co.th",
		"outlook.com", "outlook.com.ar", "outlook.com.au", "outlook.com.br", "outlook.com.gr",
		"outlook.com.pe", "outlook.com.tr", "outlook.com.vn", "outlook.cz", "outlook.de",
		"outlook.dk", "outlook.es", "outlook.fr", "outlook.hu", "outlook.id", "outlook.ie",
		"outlook.in", "outlook.it", "outlook.jp", "outlook.kr", "outlook.lv", "outlook.my",
		"outlook.ph", "outlook.pt", "outlook.sa", "outlook.sg", "outlook.sk", "passport.com",
	)
	register(yahoo,
		"rocketmail.com", "yahoo.ca", "yahoo.co.uk", "yahoo.com", "yahoo.de", "yahoo.fr",
		"yahoo.in", "yahoo.it", "ymail.com",
	)
	register(icloud, "icloud.com", "me.com")
	register(yandex, "yandex.ru", "yandex.ua", "yandex.kz", "yandex.com", "yandex.by", "ya.ru")
}

func (p mailProvider) normalize(local, host string) (string, string) {
	if p.subaddress != 0 {
		if p.lastTagOnly {
			if i := strings.LastIndexByte(local, p.subaddress); i >= 0 {
				local = local[:i]
			}
		} else if i := strings.IndexByte(local, p.subaddress); i >= 0 {
			local = local[:i]
		}
	}
	if p.removeDots {
		local = strings.ReplaceAll(local, ".", "")
	}
	if p.domain != "" {
		host = p.domain
	}
	return local, host
}

// NormalizeEmail checks the address format and returns its canonical form:
// lower-cased, with provider aliases (tags, Gmail dots, alternate domains)
// collapsed onto the underlying mailbox.
func NormalizeEmail(email string) (string, error) {
	if err := validate.Var(email, "required,email"); err != nil {
		return "", errInvalidEmail
	}

	at := strings.LastIndex(email, "@")
	local, host := strings.ToLower(email[:at]), strings.ToLower(email[at+1:])

	if p, ok := mailProviders[host]; ok {
		local, host = p.normalize(local, host)
	}
	if local == "" {
		return "", errInvalidEmail
	}
	return local + "@" + host, nil
}
