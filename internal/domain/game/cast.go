package game

import "github.com/okian/arena/internal/domain/model"

type castEntry struct {
	name   string
	gender model.Gender
}

var defaultCast = []castEntry{ //nolint:gochecknoglobals // fixed demo cast
	{"Katniss Everdeen", model.GenderFemale}, {"Peeta Mellark", model.GenderMale},
	{"Gale Hawthorne", model.GenderMale}, {"Primrose Everdeen", model.GenderFemale},
	{"Finnick Odair", model.GenderMale}, {"Johanna Mason", model.GenderFemale},
	{"Rue", model.GenderFemale}, {"Thresh", model.GenderMale},
	{"Cato", model.GenderMale}, {"Clove", model.GenderFemale},
	{"Marvel", model.GenderMale}, {"Glimmer", model.GenderFemale},
	{"Foxface", model.GenderFemale}, {"Beetee", model.GenderMale},
	{"Wiress", model.GenderFemale}, {"Mags", model.GenderFemale},
	{"Annie Cresta", model.GenderFemale}, {"Haymitch Abernathy", model.GenderMale},
	{"Effie Trinket", model.GenderFemale}, {"Caesar Flickerman", model.GenderMale},
	{"Seneca Crane", model.GenderMale}, {"Snow", model.GenderMale},
	{"Coin", model.GenderFemale}, {"Boggs", model.GenderMale},
}

// DefaultCast returns the stock 24-tribute cast without IDs. New assigns IDs
// and districts.
func DefaultCast() []model.Tribute {
	out := make([]model.Tribute, len(defaultCast))
	for i, c := range defaultCast {
		out[i] = model.Tribute{Name: c.name, Gender: c.gender}
	}
	return out
}
