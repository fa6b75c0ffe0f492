package ledger

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/garyjia/vip-ledger/internal/domain/entity"
)

// MinAddressLength is the shortest trimmed shipping address accepted
const MinAddressLength = 10

// Letters, digits, whitespace, comma, period, hyphen, hash and Arabic letters U+0621..U+064A
var addressPattern = regexp.MustCompile(`^[a-zA-Z0-9\s\p{Z}\x{FEFF},.\-\x{0621}-\x{064A}#]+$`)

// ValidateShippingAddress returns the message key of the first rule the address breaks, or "".
func ValidateShippingAddress(address string) string {
	trimmed := strings.TrimSpace(address)
	switch {
	case trimmed == "":
		return entity.MsgAddressRequired
	case utf8.RuneCountInString(trimmed) < MinAddressLength:
		return entity.MsgAddressMinLength
	case !addressPattern.MatchString(address):
		return entity.MsgAddressInvalidChars
	default:
		return ""
	}
}

// ValidateClient runs the checks that block add and update
func ValidateClient(c entity.VipClient) error {
	errs := entity.ValidationErrors{}
	if strings.TrimSpace(c.Phone) == "" {
		errs.Add("phone", entity.MsgFieldRequired)
	}
	if strings.TrimSpace(c.CompanyName) == "" {
		errs.Add("companyName", entity.MsgFieldRequired)
	}
	if msg := ValidateShippingAddress(c.ShippingAddress); msg != "" {
		errs.Add("shippingAddress", msg)
	}
	return errs.OrNil()
}

// AddClient appends c with its id forced to the phone number,
// then sorts the directory by company name for the given locale.
func AddClient(clients []entity.VipClient, c entity.VipClient, locale language.Tag) ([]entity.VipClient, entity.VipClient) {
	c.ID = c.Phone

	out := make([]entity.VipClient, len(clients), len(clients)+1)
	copy(out, clients)
	out = append(out, c)

	col := collate.New(locale)
	sort.SliceStable(out, func(i, j int) bool {
		return col.CompareString(out[i].CompanyName, out[j].CompanyName) < 0
	})
	return out, c
}

// UpdateClient replaces the entry with the same id in place. Order is kept and a miss is a no-op.
func UpdateClient(clients []entity.VipClient, c entity.VipClient) []entity.VipClient {
	for i := range clients {
		if clients[i].ID == c.ID {
			out := make([]entity.VipClient, len(clients))
			copy(out, clients)
			out[i] = c
			return out
		}
	}
	return clients
}

// DeleteClient filters clientID out
func DeleteClient(clients []entity.VipClient, clientID string) []entity.VipClient {
	out := make([]entity.VipClient, 0, len(clients))
	for _, c := range clients {
		if c.ID != clientID {
			out = append(out, c)
		}
	}
	return out
}

// FindClient looks a client up by id
func FindClient(clients []entity.VipClient, clientID string) (entity.VipClient, bool) {
	for _, c := range clients {
		if c.ID == clientID {
			return c, true
		}
	}
	return entity.VipClient{}, false
}

// SearchClients matches term against company name (case-insensitive) and phone.
// An empty term returns every client.
func SearchClients(clients []entity.VipClient, term string) []entity.VipClient {
	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]entity.VipClient, 0, len(clients))
	for _, c := range clients {
		if term == "" ||
			strings.Contains(strings.ToLower(c.CompanyName), term) ||
			strings.Contains(c.Phone, term) {
			out = append(out, c)
		}
	}
	return out
}
