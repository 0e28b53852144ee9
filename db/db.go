package db

import (
	"os"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/pkg/errors"

	"github.com/jsphweid/chordsmith/model"
)

func newClient() (*dynamodb.DynamoDB, error) {
	config := aws.Config{}
	if region := os.Getenv("AWS_REGION"); region != "" {
		config.Region = aws.String(region)
	}
	if endpoint := os.Getenv("DYNAMO_ENDPOINT"); endpoint != "" {
		config.Endpoint = aws.String(endpoint)
	}
	sess, err := session.NewSession(&config)
	if err != nil {
		return nil, errors.Wrap(err, "creating dynamodb session")
	}
	return dynamodb.New(sess), nil
}

// PutAnalysis stores one finished analysis so it can be fetched again
// by id.
func PutAnalysis(table string, rec model.AnalysisRecord) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	item := map[string]*dynamodb.AttributeValue{
		"PK":       {S: aws.String(rec.Id)},
		"Chords":   {S: aws.String(strings.Join(rec.Chords, " "))},
		"MidiPath": {S: aws.String(rec.MidiPath)},
	}
	_, err = client.PutItem(&dynamodb.PutItemInput{
		TableName: aws.String(table),
		Item:      item,
	})
	return errors.Wrap(err, "storing analysis record")
}

// GetAnalyses batch-fetches stored analyses by id. BatchGetItem caps a
// request at 10 keys, so callers must too.
func GetAnalyses(table string, ids []string) (map[string]model.AnalysisRecord, error) {
	res := make(map[string]model.AnalysisRecord)
	if len(ids) == 0 {
		return res, nil
	}
	if len(ids) > 10 {
		return nil, errors.Errorf("can fetch at most 10 ids at once, got %v", len(ids))
	}

	var keys []map[string]*dynamodb.AttributeValue
	for _, id := range ids {
		keys = append(keys, map[string]*dynamodb.AttributeValue{
			"PK": {S: aws.String(id)},
		})
	}

	client, err := newClient()
	if err != nil {
		return nil, err
	}
	input := &dynamodb.BatchGetItemInput{
		RequestItems: map[string]*dynamodb.KeysAndAttributes{
			table: {Keys: keys},
		},
	}
	out, err := client.BatchGetItem(input)
	if err != nil {
		return nil, errors.Wrap(err, "fetching analysis records")
	}

	for _, v := range out.Responses[table] {
		var rec model.AnalysisRecord
		rec.Id = *v["PK"].S
		if v["Chords"] != nil && v["Chords"].S != nil {
			rec.Chords = strings.Fields(*v["Chords"].S)
		}
		if v["MidiPath"] != nil && v["MidiPath"].S != nil {
			rec.MidiPath = *v["MidiPath"].S
		}
		res[rec.Id] = rec
	}
	return res, nil
}
