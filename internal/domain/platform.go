package domain

import "strings"

// Platform identifica o marketplace onde a venda ou o anúncio acontece
type Platform string

const (
	PlatformEbay     Platform = "eBay"
	PlatformMercari  Platform = "Mercari"
	PlatformPoshmark Platform = "Poshmark"
	PlatformDepop    Platform = "Depop"
)

// AllPlatforms lista os marketplaces suportados na ordem exibida no painel
var AllPlatforms = []Platform{PlatformEbay, PlatformMercari, PlatformPoshmark, PlatformDepop}

// ParsePlatform converte o identificador informado pelo usuário (sem diferenciar maiúsculas)
func ParsePlatform(s string) (Platform, bool) {
	value := strings.TrimSpace(s)
	for _, p := range AllPlatforms {
		if strings.EqualFold(string(p), value) {
			return p, true
		}
	}
	return "", false
}

func (p Platform) String() string {
	return string(p)
}
