// Package graph implements the remote directory/storage ports against the
// Microsoft Graph REST API (OneDrive and SharePoint).
//
// Every request goes through an Invoker, which paces calls with a token
// bucket, renews the session token on 401, honours Retry-After on 429 and
// bounds transport retries. The Client, Mailer and Downloader build the
// Graph URLs and decode the JSON payloads on top of it.
package graph
