package sublight

// ClientInfo identifies the calling application to the web service.
type ClientInfo struct {
	ClientID string `xml:"ClientId"`
	APIKey   string `xml:"ApiKey"`
}

// IMDB is a catalog entry returned by FindIMDB.
type IMDB struct {
	ID    string `xml:"Id"`
	Title string `xml:"Title"`
	Year  int    `xml:"Year"`
}

// Subtitle is a subtitle record as exchanged with the web service.
type Subtitle struct {
	SubtitleID    string           `xml:"SubtitleID,omitempty"`
	Title         string           `xml:"Title,omitempty"`
	Year          int              `xml:"Year,omitempty"`
	IMDB          string           `xml:"IMDB,omitempty"`
	Release       string           `xml:"Release,omitempty"`
	FPS           float64          `xml:"FPS,omitempty"`
	NumberOfDiscs int              `xml:"NumberOfDiscs,omitempty"`
	Season        int              `xml:"Season,omitempty"`
	Episode       int              `xml:"Episode,omitempty"`
	Language      SubtitleLanguage `xml:"Language,omitempty"`
	SubtitleType  SubtitleType     `xml:"SubtitleType,omitempty"`
	MediaType     string           `xml:"MediaType,omitempty"`
	Genre         Genre            `xml:"Genre,omitempty"`
	Downloads     int              `xml:"Downloads,omitempty"`
	Size          int64            `xml:"Size,omitempty"`
	Rate          float64          `xml:"Rate,omitempty"`
	Publisher     string           `xml:"Publisher,omitempty"`
	IsLinked      bool             `xml:"IsLinked,omitempty"`
}

// Release names a video release a subtitle is synchronised to.
type Release struct {
	SubtitleID string  `xml:"SubtitleID"`
	Name       string  `xml:"Name"`
	FPS        float64 `xml:"FPS"`
}

// DownloadTicket authorises a download after Que seconds have passed.
type DownloadTicket struct {
	Ticket string
	Que    int
}

// SubtitleLanguage is a language value known to the web service.
type SubtitleLanguage string

const (
	Albanian         SubtitleLanguage = "Albanian"
	Arabic           SubtitleLanguage = "Arabic"
	Belarusian       SubtitleLanguage = "Belarusian"
	BosnianLatin     SubtitleLanguage = "BosnianLatin"
	Bulgarian        SubtitleLanguage = "Bulgarian"
	Catalan          SubtitleLanguage = "Catalan"
	Chinese          SubtitleLanguage = "Chinese"
	Croatian         SubtitleLanguage = "Croatian"
	Czech            SubtitleLanguage = "Czech"
	Danish           SubtitleLanguage = "Danish"
	Dutch            SubtitleLanguage = "Dutch"
	English          SubtitleLanguage = "English"
	Estonian         SubtitleLanguage = "Estonian"
	Finnish          SubtitleLanguage = "Finnish"
	French           SubtitleLanguage = "French"
	German           SubtitleLanguage = "German"
	Greek            SubtitleLanguage = "Greek"
	Hebrew           SubtitleLanguage = "Hebrew"
	Hungarian        SubtitleLanguage = "Hungarian"
	Icelandic        SubtitleLanguage = "Icelandic"
	Indonesian       SubtitleLanguage = "Indonesian"
	Italian          SubtitleLanguage = "Italian"
	Japanese         SubtitleLanguage = "Japanese"
	Korean           SubtitleLanguage = "Korean"
	Latvian          SubtitleLanguage = "Latvian"
	Lithuanian       SubtitleLanguage = "Lithuanian"
	Macedonian       SubtitleLanguage = "Macedonian"
	Malay            SubtitleLanguage = "Malay"
	Norwegian        SubtitleLanguage = "Norwegian"
	Persian          SubtitleLanguage = "Persian"
	Polish           SubtitleLanguage = "Polish"
	Portuguese       SubtitleLanguage = "Portuguese"
	PortugueseBrazil SubtitleLanguage = "PortugueseBrazil"
	Romanian         SubtitleLanguage = "Romanian"
	Russian          SubtitleLanguage = "Russian"
	SerbianCyrillic  SubtitleLanguage = "SerbianCyrillic"
	SerbianLatin     SubtitleLanguage = "SerbianLatin"
	Slovak           SubtitleLanguage = "Slovak"
	Slovenian        SubtitleLanguage = "Slovenian"
	Spanish          SubtitleLanguage = "Spanish"
	Swedish          SubtitleLanguage = "Swedish"
	Thai             SubtitleLanguage = "Thai"
	Turkish          SubtitleLanguage = "Turkish"
	Ukrainian        SubtitleLanguage = "Ukrainian"
	Vietnamese       SubtitleLanguage = "Vietnamese"
)

var allLanguages = []SubtitleLanguage{
	Albanian, Arabic, Belarusian, BosnianLatin, Bulgarian, Catalan, Chinese, Croatian,
	Czech, Danish, Dutch, English, Estonian, Finnish, French, German, Greek, Hebrew,
	Hungarian, Icelandic, Indonesian, Italian, Japanese, Korean, Latvian, Lithuanian,
	Macedonian, Malay, Norwegian, Persian, Polish, Portuguese, PortugueseBrazil, Romanian,
	Russian, SerbianCyrillic, SerbianLatin, Slovak, Slovenian, Spanish, Swedish, Thai,
	Turkish, Ukrainian, Vietnamese,
}

// Languages returns every language known to the web service.
func Languages() []SubtitleLanguage {
	return append([]SubtitleLanguage(nil), allLanguages...)
}

// Genre classifies the media a subtitle belongs to.
type Genre string

const (
	GenreMovie       Genre = "Movie"
	GenreCartoon     Genre = "Cartoon"
	GenreSerial      Genre = "Serial"
	GenreDocumentary Genre = "Documentary"
	GenreOther       Genre = "Other"
	GenreUnknown     Genre = "Unknown"
)

// Genres returns every genre known to the web service.
func Genres() []Genre {
	return []Genre{GenreMovie, GenreCartoon, GenreSerial, GenreDocumentary, GenreOther, GenreUnknown}
}

// SubtitleType is the subtitle file format.
type SubtitleType string

const (
	SubtitleTypeSrt SubtitleType = "Srt"
	SubtitleTypeSub SubtitleType = "Sub"
	SubtitleTypeTxt SubtitleType = "Txt"
	SubtitleTypeSsa SubtitleType = "Ssa"
	SubtitleTypeAss SubtitleType = "Ass"
	SubtitleTypeSmi SubtitleType = "Smi"
	SubtitleTypeMpl SubtitleType = "Mpl"
)
