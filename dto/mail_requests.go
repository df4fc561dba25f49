package dto

// MailboxAuth carries the per-request credentials for an IMAP account.
// Credentials are never cached or shared across requests.
type MailboxAuth struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
}

const defaultIMAPPort = 993

func (a *MailboxAuth) ApplyDefaults() {
	if a.Port == 0 {
		a.Port = defaultIMAPPort
	}
}

// MoveEmailRequest is the payload of POST /move-email.
type MoveEmailRequest struct {
	MailboxAuth
	EmailUID     FlexString `json:"email_uid"`
	SourceFolder string     `json:"source_folder"`
	TargetFolder string     `json:"target_folder"`
}

func (r *MoveEmailRequest) ApplyDefaults() {
	r.MailboxAuth.ApplyDefaults()
	if r.SourceFolder == "" {
		r.SourceFolder = "INBOX"
	}
}

// PipeMailRequest is the payload of POST /pipe_mail.
type PipeMailRequest struct {
	MailboxAuth
	EmailUID         FlexString `json:"email_uid"`
	Subject          string     `json:"subject"`
	Text             string     `json:"text"`
	HTMLText         string     `json:"html_text"`
	Classes          []string   `json:"classes"`
	ClassDescription string     `json:"class_description"`
}

// ListFoldersRequest is the payload of POST /list-folders.
type ListFoldersRequest struct {
	MailboxAuth
}
