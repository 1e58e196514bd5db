package location

// Address is one delivery point inside a city.
type Address struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// City is a city together with its delivery points.
type City struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Addresses []Address `json:"addresses"`
}

var directory = []City{
	{
		ID:   "omsk",
		Name: "Омск",
		Addresses: []Address{
			{"office", "Офис"},
			{"kamergersky", "Камергерский"},
			{"gagarina", "Гагарина"},
			{"drujniy", "Дружный"},
			{"chv", "ЧВ"},
			{"festival", "Фестиваль"},
			{"atlantida", "Атлантида"},
			{"sfera", "Сфера"},
			{"inter", "Интер"},
			{"sibirskie_ogni", "Сибирские Огни"},
			{"mira", "Мира"},
			{"22_aprelya", "22 апреля"},
			{"tuhachevskogo", "Тухачевского"},
		},
	},
	{
		ID:   "spb",
		Name: "Санкт-Петербург",
		Addresses: []Address{
			{"kirova", "Кирова"},
			{"novaya_gollandia", "Новая Голландия"},
			{"vosstaniya", "Восстания"},
			{"posadskaya", "Посадская"},
			{"vokzal", "Вокзал"},
		},
	},
	{
		ID:   "samara",
		Name: "Самара",
		Addresses: []Address{
			{"krasnoarmeyskaya", "Красноармейская"},
			{"kuibysheva", "Куйбышева"},
			{"molodogvardeyskaya", "Молодогвардейская"},
			{"novo_sadovaya", "Ново-Садовая"},
			{"galaktionovskaya", "Галактионовская"},
			{"volna", "Волна"},
		},
	},
	{
		ID:        "moscow",
		Name:      "Москва",
		Addresses: []Address{{"mos_center", "Центр"}},
	},
	{
		ID:        "kazan",
		Name:      "Казань",
		Addresses: []Address{{"kaz_center", "Центр"}},
	},
}

var departments = []string{
	"Финансовый отдел",
	"Развитие сети",
	"Снабжение",
	"Тренеры по кофе",
	"Маркетинг",
	"HR+Университет",
	"IT Отдел",
	"Отдел напитки",
}

// Cities returns a copy of the directory.
func Cities() []City {
	out := make([]City, len(directory))
	for i, c := range directory {
		c.Addresses = append([]Address(nil), c.Addresses...)
		out[i] = c
	}
	return out
}

// Lookup finds a city by id.
func Lookup(cityID string) (City, bool) {
	for _, c := range directory {
		if c.ID == cityID {
			return c, true
		}
	}
	return City{}, false
}

// AddressIDs lists the configured address ids of a city in display order.
func AddressIDs(cityID string) []string {
	c, ok := Lookup(cityID)
	if !ok {
		return nil
	}
	ids := make([]string, len(c.Addresses))
	for i, a := range c.Addresses {
		ids[i] = a.ID
	}
	return ids
}

// AddressLabel is the display name of an address. Unknown addresses are
// shown by their id.
func AddressLabel(cityID, addressID string) string {
	addressID = NormalizeAddress(addressID)
	if c, ok := Lookup(NormalizeCity(cityID)); ok {
		for _, a := range c.Addresses {
			if a.ID == addressID {
				return a.Label
			}
		}
	}
	return addressID
}

// Departments returns the fixed list of head-office departments.
func Departments() []string {
	return append([]string(nil), departments...)
}
