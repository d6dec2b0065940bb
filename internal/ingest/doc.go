// Locus - Geographic Business Linking and Similarity Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/locus

/*
Package ingest reads business and review records from JSON lines files and
turns them into a models.Dataset for the build phase.

# Input Format

Each line holds one JSON object. Business records follow the public Yelp
dataset layout:

	{"business_id":"b1","name":"Taco Stand","latitude":33.45,"longitude":-112.07,
	 "stars":4.5,"review_count":12,"is_open":1,
	 "categories":"Mexican, Fast Food",
	 "attributes":{"WiFi":"True","OutdoorSeating":false},
	 "hours":{"Monday":"8:0-22:0"}}

  - categories is a single comma separated string
  - is_open is 0 or 1
  - attributes values are booleans or strings; only true and "True" count
    as set, everything else is dropped

Reviews carry review_id, business_id, stars and text.

# Error Handling

Blank lines are skipped. A line that does not decode, or a business that
fails validation, is skipped, counted in LoadStats and logged at warn level.
Reading stops after MaxRecords records per file.

ValidateReviews drops reviews whose business_id is not in the business set.
Each dropped review is logged once with a timestamp, to the application log
and, when configured, to a separate integrity log file. Dropped reviews are
never retried.
*/
package ingest
