package main

// seedCategory is one storefront tab with the plans it starts with
type seedCategory struct {
	Name  string
	Label string
	Icon  string
	Plans []seedPlan
}

type seedPlan struct {
	Price           int64
	Data            string
	OriginalData    *string
	Multiplier      *string
	Features        string
	SMS             *string
	Duration        string
	HasCalls        bool
	UnlimitedSocial bool
	IsFeatured      bool
	IsMifi          bool
	Tag             *string
}

type seedSetting struct {
	Key   string
	Value string
	Type  string
}

func text(s string) *string { return &s }

const tripleTag = "Cámbiate y recibe el Triple de GB"

var defaultCatalog = []seedCategory{
	{
		Name:  "monthly",
		Label: "Mensuales",
		Icon:  "DateRange",
		Plans: []seedPlan{
			{Price: 109, Data: "1 GB", Features: "Redes Sociales", SMS: text("50 SMS"), Duration: "30 días"},
			{Price: 154, Data: "6GB", OriginalData: text("2GB"), Multiplier: text("Triple"), Features: "Redes Sociales Ilimitadas", SMS: text("1,750 SMS"), Duration: "30 días", UnlimitedSocial: true, IsFeatured: true, Tag: text(tripleTag)},
			{Price: 204, Data: "12GB", OriginalData: text("4GB"), Multiplier: text("Triple"), Features: "Llamadas y Redes Sociales Ilimitadas", SMS: text("1,750 SMS"), Duration: "30 días", HasCalls: true, UnlimitedSocial: true, Tag: text(tripleTag)},
			{Price: 259, Data: "36GB", OriginalData: text("12GB"), Multiplier: text("Triple"), Features: "Llamadas y Redes Sociales Ilimitadas", SMS: text("3,500 SMS"), Duration: "30 días", HasCalls: true, UnlimitedSocial: true, IsFeatured: true, Tag: text(tripleTag)},
			{Price: 334, Data: "72GB", OriginalData: text("24GB"), Multiplier: text("Triple"), Features: "Llamadas y Redes Sociales Ilimitadas", SMS: text("3,500 SMS"), Duration: "30 días", HasCalls: true, UnlimitedSocial: true, Tag: text(tripleTag)},
			{Price: 409, Data: "105GB", OriginalData: text("35GB"), Multiplier: text("Triple"), Features: "Llamadas y Redes Sociales Ilimitadas", SMS: text("3,500 SMS"), Duration: "30 días", HasCalls: true, UnlimitedSocial: true, IsFeatured: true, Tag: text(tripleTag)},
			{Price: 644, Data: "150GB", OriginalData: text("50GB"), Multiplier: text("Triple"), Features: "Llamadas y Redes Sociales Ilimitadas", SMS: text("6,000 SMS"), Duration: "30 días", HasCalls: true, UnlimitedSocial: true, Tag: text(tripleTag)},
		},
	},
	{
		Name:  "quarterly",
		Label: "Trimestrales",
		Icon:  "Event",
		Plans: []seedPlan{
			{Price: 954, Data: "72GB", OriginalData: text("24GB"), Multiplier: text("Triple"), Features: "Redes Sociales Ilimitadas", SMS: text("3,500 SMS"), Duration: "3 meses", UnlimitedSocial: true, Tag: text(tripleTag)},
		},
	},
	{
		Name:  "semester",
		Label: "Semestrales",
		Icon:  "EventNote",
		Plans: []seedPlan{
			{Price: 1829, Data: "72GB", OriginalData: text("24GB"), Multiplier: text("Triple"), Features: "Llamadas y Redes Sociales Ilimitadas", SMS: text("3,500 SMS"), Duration: "6 meses", HasCalls: true, UnlimitedSocial: true, IsFeatured: true, Tag: text(tripleTag)},
		},
	},
	{
		Name:  "annual",
		Label: "Anuales",
		Icon:  "CalendarMonth",
		Plans: []seedPlan{
			{Price: 3419, Data: "24 GB", Features: "Llamadas y Redes Sociales Ilimitadas", SMS: text("3,500 SMS"), Duration: "12 meses", HasCalls: true, UnlimitedSocial: true},
		},
	},
	{
		Name:  "mifi",
		Label: "MIFI",
		Icon:  "Router",
		Plans: []seedPlan{
			{Price: 232, Data: "MIFI 5", Features: "5 GB de datos", Duration: "30 días", IsMifi: true},
			{Price: 348, Data: "MIFI 10", Features: "10 GB de datos", Duration: "30 días", IsMifi: true},
			{Price: 464, Data: "MIFI 20", Features: "20 GB de datos", Duration: "30 días", IsMifi: true},
			{Price: 580, Data: "MIFI 30", Features: "30 GB de datos", Duration: "30 días", IsMifi: true},
			{Price: 696, Data: "MIFI 50", Features: "50 GB de datos", Duration: "30 días", IsMifi: true},
		},
	},
}

var defaultSettings = []seedSetting{
	{Key: "site_name", Value: "Intercel", Type: "string"},
	{Key: "contact_email", Value: "contacto@intercel.com.mx", Type: "string"},
	{Key: "contact_phone", Value: "55 8993 1510", Type: "string"},
	{Key: "contact_shortcode", Value: "*233", Type: "string"},
}
