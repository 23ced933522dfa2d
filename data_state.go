package main

import (
	"github.com/andareed/siftly-trend/alarms"
	"github.com/andareed/siftly-trend/trend"
)

type dataState struct {
	trendPath string
	alarmPath string

	// alarm table screen
	header          []alarmColumn
	rows            []tableRow // one per alarms.Table record, same order
	query           alarms.Query
	order           alarms.Order
	filteredIndices []int           // indices into rows after query and order
	alarmRange      trend.DateRange // from the range drawer or the cursor window
}
