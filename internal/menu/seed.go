package menu

func ptr[T any](v T) *T { return &v }

// seedCatalog is used when neither the city nor the shared default has a
// stored catalog.
func seedCatalog() Catalog {
	return Catalog{
		Items: []Dish{
			{
				ID:           "salad_ham",
				Name:         "Салат ветчинный",
				Category:     Salads,
				Price:        ptr(150.0),
				Composition:  "ветчина, огурцы, сыр, капуста, зелень, майонез",
				GarnishGrams: ptr(140.0),
			},
			{
				ID:           "soup_solyanka_meat",
				Name:         "Солянка",
				Category:     Hot,
				Price:        ptr(250.0),
				Composition:  "мясо, колбаски, огурцы, маслины, томаты, сметана, лимон",
				GarnishGrams: ptr(250.0),
			},
			{
				ID:           "single_salmon_roll",
				Name:         "Ролл с семгой",
				Category:     Single,
				Price:        ptr(350.0),
				Protein:      ptr(15.8),
				Carbs:        ptr(45.2),
				Fats:         ptr(8.3),
				GarnishGrams: ptr(250.0),
			},
		},
		Sides: []SideDish{
			{ID: "no_garnish", Name: "Без гарнира"},
			{ID: "grilled_vegetables", Name: "Овощи гриль"},
			{ID: "rice_with_vegetables", Name: "Рис с овощами"},
			{ID: "boiled_rice", Name: "Рис отварной"},
			{ID: "mashed_potatoes", Name: "Картофельное пюре"},
			{ID: "baked_potatoes", Name: "Запеченный картофель"},
			{ID: "steamed_vegetables", Name: "Овощи на пару"},
			{ID: "bulgur", Name: "Булгур"},
			{ID: "grechka", Name: "Гречка"},
			{ID: "spaghetti", Name: "Спагетти"},
			{ID: "ptitim", Name: "Паста пти-тим"},
			{ID: "poppy_seeds", Name: "Мак"},
			{ID: "apple", Name: "Яблоко"},
		},
	}
}

func seedConfig() Config {
	return Config{
		Categories: []MenuCategory{
			{ID: Salads, Name: string(Salads), DishIDs: []string{"salad_ham"}},
			{ID: Hot, Name: string(Hot), DishIDs: []string{"soup_solyanka_meat"}},
			{ID: Single, Name: string(Single), DishIDs: []string{"single_salmon_roll"}},
		},
	}
}
