package constants

// DefaultEndpoint is the standard URL of the Sublight SOAP web service.
const DefaultEndpoint = "http://www.sublight.si/SublightWebService/Sublight.asmx"

// Namespace is the XML namespace of the Sublight web service messages.
const Namespace = "http://www.sublight.si/"

// InstallationID identifies this client installation to the service.
const InstallationID = "25f30171-518c-463b-a310-b9f8e1eddb40"

// SiteURL is the public Sublight home page.
const SiteURL = "http://www.sublight.si"

// SearchPageURL is the public subtitle search page.
const SearchPageURL = "http://www.sublight.si/SearchSubtitles.aspx"

// ImdbTitleURLFormat formats a numeric IMDb id into a title URL.
const ImdbTitleURLFormat = "http://www.imdb.com/title/tt%07d"
