package runner

import "github.com/aretw0/fieldprint/pkg/domain"

// Banners holds the fixed lines printed around the two sections of a run.
type Banners struct {
	Start     string `json:"start,omitempty" yaml:"start" mapstructure:"start"`
	Title     string `json:"title,omitempty" yaml:"title" mapstructure:"title"`
	Stdin     string `json:"stdin,omitempty" yaml:"stdin" mapstructure:"stdin"`
	Argv      string `json:"argv,omitempty" yaml:"argv" mapstructure:"argv"`
	EndOfData string `json:"end_of_data,omitempty" yaml:"end_of_data" mapstructure:"end_of_data"`
	End       string `json:"end,omitempty" yaml:"end" mapstructure:"end"`
}

// DefaultBanners returns the stock banners for a variant.
func DefaultBanners(v domain.Variant) Banners {
	title := "Script Python Conversor"
	if v == domain.VariantNombre {
		title = "Script Python Nombre"
	}
	return Banners{
		Start:     "Inicio",
		Title:     title,
		Stdin:     "Recibido por STDIN: ",
		Argv:      "Recibido por ARGV:",
		EndOfData: "Fin de datos",
		End:       "Fin del script",
	}
}

// Merge fills the empty fields of b from def.
func (b Banners) Merge(def Banners) Banners {
	pick := func(v, d string) string {
		if v == "" {
			return d
		}
		return v
	}
	return Banners{
		Start:     pick(b.Start, def.Start),
		Title:     pick(b.Title, def.Title),
		Stdin:     pick(b.Stdin, def.Stdin),
		Argv:      pick(b.Argv, def.Argv),
		EndOfData: pick(b.EndOfData, def.EndOfData),
		End:       pick(b.End, def.End),
	}
}
