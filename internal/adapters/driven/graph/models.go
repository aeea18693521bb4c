package graph

import "github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/domain"

// collection is a page of a Graph collection response.
type collection[T any] struct {
	Value    []T    `json:"value"`
	NextLink string `json:"@odata.nextLink,omitempty"`
}

// driveItem is a file or folder returned by drive search and listing endpoints.
type driveItem struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	WebURL string `json:"webUrl"`
	File   *struct {
		MimeType string `json:"mimeType"`
	} `json:"file,omitempty"`
	Folder *struct {
		ChildCount int `json:"childCount"`
	} `json:"folder,omitempty"`
	ParentReference *itemReference `json:"parentReference,omitempty"`
	RemoteItem      *driveItem     `json:"remoteItem,omitempty"`
	DownloadURL     string         `json:"@microsoft.graph.downloadUrl,omitempty"`
}

// itemReference locates an item's parent.
type itemReference struct {
	ID      string `json:"id,omitempty"`
	DriveID string `json:"driveId,omitempty"`
	SiteID  string `json:"siteId,omitempty"`
}

// toFile converts a drive item to a domain file. Shared and recent items
// carry their real location in remoteItem.
func (d driveItem) toFile() domain.File {
	f := domain.File{
		ID:          d.ID,
		Name:        d.Name,
		WebURL:      d.WebURL,
		DownloadURL: d.DownloadURL,
		IsFolder:    d.Folder != nil,
	}
	if d.File != nil {
		f.MIMEType = d.File.MimeType
	}
	if d.ParentReference != nil {
		f.DriveID = d.ParentReference.DriveID
	}

	if r := d.RemoteItem; r != nil {
		if r.ParentReference != nil && r.ParentReference.DriveID != "" {
			f.ID = r.ID
			f.DriveID = r.ParentReference.DriveID
		}
		if f.MIMEType == "" && r.File != nil {
			f.MIMEType = r.File.MimeType
		}
		if f.WebURL == "" {
			f.WebURL = r.WebURL
		}
		f.IsFolder = f.IsFolder || r.Folder != nil
	}
	return f
}

func toFiles(items []driveItem) []domain.File {
	files := make([]domain.File, 0, len(items))
	for _, item := range items {
		files = append(files, item.toFile())
	}
	return files
}

// site is a SharePoint site.
type site struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	WebURL      string `json:"webUrl"`
}

func (s site) toContainer() domain.Container {
	name := s.DisplayName
	if name == "" {
		name = s.Name
	}
	return domain.Container{ID: s.ID, Name: name, WebURL: s.WebURL}
}

// drive is a document library of a site.
type drive struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	WebURL    string `json:"webUrl"`
	DriveType string `json:"driveType"`
}

func (d drive) toContainer() domain.Container {
	return domain.Container{ID: d.ID, Name: d.Name, WebURL: d.WebURL}
}

// user is the /me profile.
type user struct {
	ID                string `json:"id"`
	DisplayName       string `json:"displayName"`
	Mail              string `json:"mail"`
	UserPrincipalName string `json:"userPrincipalName"`
}

// sendMailRequest is the body of /me/sendMail.
type sendMailRequest struct {
	Message         mailMessage `json:"message"`
	SaveToSentItems bool        `json:"saveToSentItems"`
}

type mailMessage struct {
	Subject      string      `json:"subject"`
	Body         mailBody    `json:"body"`
	ToRecipients []recipient `json:"toRecipients"`
}

type mailBody struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

type recipient struct {
	EmailAddress emailAddress `json:"emailAddress"`
}

type emailAddress struct {
	Address string `json:"address"`
}
