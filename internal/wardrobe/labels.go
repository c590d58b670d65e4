package wardrobe

// DefaultKinds is the built-in list of clothing and accessory categories.
var DefaultKinds = []string{
	"koszula",
	"żakiet",
	"bluza",
	"bluzka",
	"spodnie",
	"sukienka",
	"spódnica",
	"garnitur",
	"kurtka",
	"sweter",
	"T-shirt",
	"marynarka",
	"kamizelka",
	"płaszcz",
	"dresy",
	"legginsy",
	"kombinezon",
	"piżama",
	"szalik",
	"czapka",
	"rękawiczki",
	"buty",
	"sandały",
	"kapelusz",
	"krawat",
	"torebka",
	"plecak",
	"pasek",
	"okulary przeciwsłoneczne",
	"kolczyki",
	"naszyjnik",
	"bransoletka",
	"zegarek",
	"portfel",
	"fartuch lekarski",
	"stetoskop",
	"rękawice lateksowe",
	"czepek chirurgiczny",
	"maska medyczna",
	"body dziecięce",
	"śpioszki",
	"buciki dziecięce",
	"czapeczka dziecięca",
	"śliniak",
	"kamizelka odblaskowa",
	"fartuch sklepowy",
}

// DefaultColors is the built-in list of color labels.
var DefaultColors = []string{
	"czerwony",
	"niebieski",
	"zielony",
	"czarny",
	"biały",
	"żółty",
	"szary",
	"różowy",
	"brązowy",
	"pomarańczowy",
	"fioletowy",
	"beżowy",
	"złoty",
	"srebrny",
}
