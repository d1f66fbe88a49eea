// Package corpus turns a knowledge base into the ordered text units that get
// embedded and indexed.
//
// Each record kind has a fixed line template:
//
//	Job Title: {title}        Event: {title}       Program: {title}       Q: {question}
//	Company: {company}        Date: {date}         Duration: {duration}   A: {answer}
//	Location: {location}      Location: {location} Description: {desc}
//	Description: {desc}       Description: {desc}
//
// The organization description is used as-is after trimming surrounding
// whitespace. Build validates every record before rendering it.
package corpus
