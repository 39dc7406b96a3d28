// Package keys builds the counter key namespace.
//
// Every counter the aggregator touches lives under one of a fixed set of
// prefixes. Centralizing construction here keeps identifier interpolation in
// one place so a username can never collide with an event type namespace
package keys

import "strconv"

// Fixed global keys
const (
	EventsTotal   = "events:total"
	EventsWeekday = "events:weekday"
	EventsHour    = "events:hour"
	RankUsers     = "rank:users"
	RankEvents    = "rank:events"
	RankRepos     = "rank:repos"
	RankLangs     = "rank:langs"
	RankLangsPush = "rank:langs:push"
)

// EventWeekday is the weekday histogram for one event type
func EventWeekday(eventType string) string { return "event:" + eventType + ":weekday" }

// EventHour is the hour histogram for one event type
func EventHour(eventType string) string { return "event:" + eventType + ":hour" }

// UserWeekday is the weekday histogram for one user
func UserWeekday(login string) string { return "user:" + login + ":weekday" }

// UserHour is the hour histogram for one user
func UserHour(login string) string { return "user:" + login + ":hour" }

// UserEvents ranks event types for one user
func UserEvents(login string) string { return "user:" + login + ":events" }

// UserEventWeekday is the weekday histogram for one user and event type
func UserEventWeekday(login, eventType string) string {
	return "user:" + login + ":event:" + eventType + ":weekday"
}

// UserEventHour is the hour histogram for one user and event type
func UserEventHour(login, eventType string) string {
	return "user:" + login + ":event:" + eventType + ":hour"
}

// UserRepos ranks repositories for one user
func UserRepos(login string) string { return "user:" + login + ":repos" }

// RepoUsers ranks users for one repository; repo is the full owner/name form
func RepoUsers(repo string) string { return "repo:" + repo + ":users" }

// UserLangs ranks languages for one user
func UserLangs(login string) string { return "user:" + login + ":langs" }

// LangUsers ranks contributors for one language
func LangUsers(language string) string { return "lang:" + language + ":users" }

// Weekday renders a weekday ordinal (Sunday = 0) as a histogram field
func Weekday(wd int) string { return strconv.Itoa(wd) }

// Hour renders an hour of day as a histogram field
func Hour(h int) string { return strconv.Itoa(h) }
