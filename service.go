package sublight

import (
	"context"
	"encoding/base64"
	"encoding/xml"
	"fmt"

	"github.com/angelospk/sublight-go/internal/httpclient"
	apperrors "github.com/angelospk/sublight-go/pkg/core/errors"
)

// Service is the remote Sublight web service. Every method reports a
// non-empty error indicator in the response as a *errors.ServiceError.
type Service interface {
	LogInAnonymous(ctx context.Context, info ClientInfo, args []string) (string, error)
	LogIn(ctx context.Context, username, passwordHash string, info ClientInfo, args []string) (string, error)
	LogOut(ctx context.Context, session string) error
	FindIMDB(ctx context.Context, query string) ([]IMDB, error)
	SearchSubtitles(ctx context.Context, req SearchSubtitlesRequest) (*SearchSubtitlesResult, error)
	GetDownloadTicket(ctx context.Context, session, subtitleID string) (*DownloadTicket, error)
	DownloadByID(ctx context.Context, session, subtitleID, ticket string) ([]byte, error)
	PublishSubtitle(ctx context.Context, session string, subtitle Subtitle, data []byte) (string, error)
	AddHashLink(ctx context.Context, session, subtitleID, videoHash string) error
}

// SearchSubtitlesRequest holds the filters of a subtitle search.
type SearchSubtitlesRequest struct {
	Session     string
	VideoHashes []string
	Title       string
	Year        *int
	Languages   []SubtitleLanguage
	Genres      []Genre
}

// SearchSubtitlesResult is the raw result of a subtitle search.
type SearchSubtitlesResult struct {
	Subtitles []Subtitle
	Releases  []Release
}

// soapService implements Service on top of the SOAP transport.
type soapService struct {
	client *httpclient.Client
}

func newSOAPService(client *httpclient.Client) *soapService {
	return &soapService{client: client}
}

type logInAnonymousRequest struct {
	XMLName    xml.Name   `xml:"http://www.sublight.si/ LogInAnonymous4"`
	ClientInfo ClientInfo `xml:"clientInfo"`
	Args       []string   `xml:"args>string"`
}

type logInRequest struct {
	XMLName    xml.Name   `xml:"http://www.sublight.si/ LogIn6"`
	Username   string     `xml:"username"`
	Password   string     `xml:"passwordHash"`
	ClientInfo ClientInfo `xml:"clientInfo"`
	Args       []string   `xml:"args>string"`
}

type logInResponse struct {
	Session string  `xml:"session"`
	Error   *string `xml:"error"`
}

type logOutRequest struct {
	XMLName xml.Name `xml:"http://www.sublight.si/ LogOut"`
	Session string   `xml:"session"`
}

type errorOnlyResponse struct {
	Error *string `xml:"error"`
}

type findIMDBRequest struct {
	XMLName xml.Name `xml:"http://www.sublight.si/ FindIMDB"`
	Keyword string   `xml:"keyword"`
	Year    *int     `xml:"year"`
}

type findIMDBResponse struct {
	Result []IMDB  `xml:"result>IMDB"`
	Error  *string `xml:"error"`
}

type searchSubtitlesRequest struct {
	XMLName     xml.Name           `xml:"http://www.sublight.si/ SearchSubtitles4"`
	Session     string             `xml:"session"`
	VideoHashes []string           `xml:"videoHash>string"`
	Title       string             `xml:"title,omitempty"`
	Year        *int               `xml:"year"`
	Season      *int               `xml:"season"`
	Episode     *int               `xml:"episode"`
	Languages   []SubtitleLanguage `xml:"languages>SubtitleLanguage"`
	Genres      []Genre            `xml:"genres>Genre"`
	Sender      string             `xml:"sender,omitempty"`
	RateAbove   *float64           `xml:"rateGreaterThan"`
}

type searchSubtitlesResponse struct {
	Subtitles []Subtitle `xml:"subtitles>Subtitle"`
	Releases  []Release  `xml:"releases>Release"`
	Error     *string    `xml:"error"`
}

type getDownloadTicketRequest struct {
	XMLName    xml.Name `xml:"http://www.sublight.si/ GetDownloadTicket2"`
	Session    string   `xml:"session"`
	SubtitleID string   `xml:"id"`
}

type getDownloadTicketResponse struct {
	Ticket string  `xml:"ticket"`
	Que    int     `xml:"que"`
	Error  *string `xml:"error"`
}

type downloadByIDRequest struct {
	XMLName          xml.Name `xml:"http://www.sublight.si/ DownloadByID4"`
	Session          string   `xml:"sessionID"`
	SubtitleID       string   `xml:"subtitleID"`
	CodePage         int      `xml:"codePage"`
	RemoveFormatting bool     `xml:"removeFormatting"`
	Ticket           string   `xml:"ticket"`
}

type downloadByIDResponse struct {
	Data  string  `xml:"data"`
	Error *string `xml:"error"`
}

type publishSubtitleRequest struct {
	XMLName  xml.Name `xml:"http://www.sublight.si/ PublishSubtitle2"`
	Session  string   `xml:"session"`
	Subtitle Subtitle `xml:"subtitle"`
	Data     string   `xml:"data"`
}

type publishSubtitleResponse struct {
	SubtitleID string  `xml:"subtitleID"`
	Error      *string `xml:"error"`
}

type addHashLinkRequest struct {
	XMLName    xml.Name `xml:"http://www.sublight.si/ AddHashLink3"`
	Session    string   `xml:"session"`
	SubtitleID string   `xml:"subtitleID"`
	VideoHash  string   `xml:"videoHash"`
}

func (s *soapService) LogInAnonymous(ctx context.Context, info ClientInfo, args []string) (string, error) {
	var resp logInResponse
	if err := s.client.Call(ctx, "LogInAnonymous4", logInAnonymousRequest{ClientInfo: info, Args: args}, &resp); err != nil {
		return "", err
	}
	if err := apperrors.CheckError("LogInAnonymous4", resp.Error); err != nil {
		return "", err
	}
	return resp.Session, nil
}

func (s *soapService) LogIn(ctx context.Context, username, passwordHash string, info ClientInfo, args []string) (string, error) {
	var resp logInResponse
	req := logInRequest{Username: username, Password: passwordHash, ClientInfo: info, Args: args}
	if err := s.client.Call(ctx, "LogIn6", req, &resp); err != nil {
		return "", err
	}
	if err := apperrors.CheckError("LogIn6", resp.Error); err != nil {
		return "", err
	}
	return resp.Session, nil
}

func (s *soapService) LogOut(ctx context.Context, session string) error {
	var resp errorOnlyResponse
	if err := s.client.Call(ctx, "LogOut", logOutRequest{Session: session}, &resp); err != nil {
		return err
	}
	return apperrors.CheckError("LogOut", resp.Error)
}

func (s *soapService) FindIMDB(ctx context.Context, query string) ([]IMDB, error) {
	var resp findIMDBResponse
	if err := s.client.Call(ctx, "FindIMDB", findIMDBRequest{Keyword: query}, &resp); err != nil {
		return nil, err
	}
	if err := apperrors.CheckError("FindIMDB", resp.Error); err != nil {
		return nil, err
	}
	return resp.Result, nil
}

func (s *soapService) SearchSubtitles(ctx context.Context, req SearchSubtitlesRequest) (*SearchSubtitlesResult, error) {
	var resp searchSubtitlesResponse
	msg := searchSubtitlesRequest{
		Session:     req.Session,
		VideoHashes: req.VideoHashes,
		Title:       req.Title,
		Year:        req.Year,
		Languages:   req.Languages,
		Genres:      req.Genres,
	}
	if err := s.client.Call(ctx, "SearchSubtitles4", msg, &resp); err != nil {
		return nil, err
	}
	if err := apperrors.CheckError("SearchSubtitles4", resp.Error); err != nil {
		return nil, err
	}
	return &SearchSubtitlesResult{Subtitles: resp.Subtitles, Releases: resp.Releases}, nil
}

func (s *soapService) GetDownloadTicket(ctx context.Context, session, subtitleID string) (*DownloadTicket, error) {
	var resp getDownloadTicketResponse
	if err := s.client.Call(ctx, "GetDownloadTicket2", getDownloadTicketRequest{Session: session, SubtitleID: subtitleID}, &resp); err != nil {
		return nil, err
	}
	if err := apperrors.CheckError("GetDownloadTicket2", resp.Error); err != nil {
		return nil, err
	}
	return &DownloadTicket{Ticket: resp.Ticket, Que: resp.Que}, nil
}

func (s *soapService) DownloadByID(ctx context.Context, session, subtitleID, ticket string) ([]byte, error) {
	var resp downloadByIDResponse
	req := downloadByIDRequest{
		Session:    session,
		SubtitleID: subtitleID,
		CodePage:   -1,
		Ticket:     ticket,
	}
	if err := s.client.Call(ctx, "DownloadByID4", req, &resp); err != nil {
		return nil, err
	}
	if err := apperrors.CheckError("DownloadByID4", resp.Error); err != nil {
		return nil, err
	}
	data, err := base64.StdEncoding.DecodeString(resp.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode DownloadByID4 data: %w", err)
	}
	return data, nil
}

func (s *soapService) PublishSubtitle(ctx context.Context, session string, subtitle Subtitle, data []byte) (string, error) {
	var resp publishSubtitleResponse
	req := publishSubtitleRequest{
		Session:  session,
		Subtitle: subtitle,
		Data:     base64.StdEncoding.EncodeToString(data),
	}
	if err := s.client.Call(ctx, "PublishSubtitle2", req, &resp); err != nil {
		return "", err
	}
	if err := apperrors.CheckError("PublishSubtitle2", resp.Error); err != nil {
		return "", err
	}
	return resp.SubtitleID, nil
}

func (s *soapService) AddHashLink(ctx context.Context, session, subtitleID, videoHash string) error {
	var resp errorOnlyResponse
	req := addHashLinkRequest{Session: session, SubtitleID: subtitleID, VideoHash: videoHash}
	if err := s.client.Call(ctx, "AddHashLink3", req, &resp); err != nil {
		return err
	}
	return apperrors.CheckError("AddHashLink3", resp.Error)
}
