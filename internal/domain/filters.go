package domain

// Valores especiais aceitos pelos seletores de plataforma e ano
const (
	FilterAll = "all"
)

// Filters é a configuração de filtros aplicada a uma coleção. É um valor imutável:
// cada aba do painel recebe a sua cópia.
type Filters struct {
	Search    string `json:"search"`
	Platform  string `json:"platform"`   // "all" ou uma Platform
	StartDate string `json:"start_date"` // Inclusivo, vazio = sem limite
	EndDate   string `json:"end_date"`   // Inclusivo, vazio = sem limite
	Year      string `json:"year"`       // "all" ou yyyy
}

func DefaultFilters(year string) Filters {
	return Filters{
		Platform: FilterAll,
		Year:     year,
	}
}

// Cleared remove busca, plataforma e período mantendo o ano selecionado
func (f Filters) Cleared() Filters {
	return DefaultFilters(f.Year)
}

// AllPlatforms informa se o filtro de plataforma está desligado
func (f Filters) AllPlatforms() bool {
	return f.Platform == "" || f.Platform == FilterAll
}

// AllYears informa se o filtro de ano está desligado
func (f Filters) AllYears() bool {
	return f.Year == "" || f.Year == FilterAll
}
