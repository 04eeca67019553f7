package metadata

// Table names in canonical order.
const (
	TableDetails             = "details"
	TableCast                = "cast"
	TableCrew                = "crew"
	TableGenres              = "genres"
	TableSpokenLanguages     = "spoken_languages"
	TableProductionCompanies = "production_companies"
	TableProductionCountries = "production_countries"
	TableCollection          = "collection"
)

// TableNames returns every normalized table name in canonical order.
func TableNames() []string {
	return []string{
		TableDetails,
		TableCast,
		TableCrew,
		TableGenres,
		TableSpokenLanguages,
		TableProductionCompanies,
		TableProductionCountries,
		TableCollection,
	}
}

// Details is the single-row-per-id scalar table.
type Details struct {
	TMDBID           int64
	Adult            bool
	BackdropPath     string
	Budget           int64
	Homepage         string
	IMDBID           string
	OriginalLanguage string
	OriginalTitle    string
	Overview         string
	Popularity       float64
	PosterPath       string
	ReleaseDate      string // YYYY-MM-DD, empty when absent
	Revenue          int64
	Runtime          int64
	Status           string
	Tagline          string
	Title            string
	Video            bool
	VoteAverage      float64
	VoteCount        int64
}

// CastMember is one credited cast entry.
type CastMember struct {
	TMDBID             int64
	Adult              bool
	Gender             int64
	PersonID           int64
	KnownForDepartment string
	Name               string
	OriginalName       string
	Popularity         float64
	ProfilePath        string
	CastID             int64
	Character          string
	CreditID           string
	Order              int64
}

// CrewMember is one credited crew entry.
type CrewMember struct {
	TMDBID             int64
	Adult              bool
	Gender             int64
	PersonID           int64
	KnownForDepartment string
	Name               string
	OriginalName       string
	Popularity         float64
	ProfilePath        string
	CreditID           string
	Department         string
	Job                string
}

// Genre is one genre tag.
type Genre struct {
	TMDBID  int64
	GenreID int64
	Name    string
}

// SpokenLanguage is one spoken-language entry.
type SpokenLanguage struct {
	TMDBID      int64
	EnglishName string
	ISO639_1    string
	Name        string
}

// ProductionCompany is one producing company.
type ProductionCompany struct {
	TMDBID        int64
	CompanyID     int64
	LogoPath      string
	Name          string
	OriginCountry string
}

// ProductionCountry is one producing country.
type ProductionCountry struct {
	TMDBID    int64
	ISO3166_1 string
	Name      string
}

// Collection is the optional franchise a movie belongs to.
type Collection struct {
	TMDBID       int64
	CollectionID int64
	Name         string
	PosterPath   string
	BackdropPath string
}

// Tables holds every normalized row produced from one detail payload.
type Tables struct {
	TMDBID              int64
	Details             []Details
	Cast                []CastMember
	Crew                []CrewMember
	Genres              []Genre
	SpokenLanguages     []SpokenLanguage
	ProductionCompanies []ProductionCompany
	ProductionCountries []ProductionCountry
	Collection          []Collection
}
