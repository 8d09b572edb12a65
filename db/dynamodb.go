package db

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/mbland/addrcheck/ops"
)

type DynamoDbClient interface {
	CreateTable(
		context.Context, *dynamodb.CreateTableInput, ...func(*dynamodb.Options),
	) (*dynamodb.CreateTableOutput, error)

	DescribeTable(
		context.Context,
		*dynamodb.DescribeTableInput,
		...func(*dynamodb.Options),
	) (*dynamodb.DescribeTableOutput, error)

	UpdateTimeToLive(
		context.Context,
		*dynamodb.UpdateTimeToLiveInput,
		...func(*dynamodb.Options),
	) (*dynamodb.UpdateTimeToLiveOutput, error)

	DeleteTable(
		context.Context, *dynamodb.DeleteTableInput, ...func(*dynamodb.Options),
	) (*dynamodb.DeleteTableOutput, error)

	GetItem(
		context.Context, *dynamodb.GetItemInput, ...func(*dynamodb.Options),
	) (*dynamodb.GetItemOutput, error)

	PutItem(
		context.Context, *dynamodb.PutItemInput, ...func(*dynamodb.Options),
	) (*dynamodb.PutItemOutput, error)

	DeleteItem(
		context.Context, *dynamodb.DeleteItemInput, ...func(*dynamodb.Options),
	) (*dynamodb.DeleteItemOutput, error)
}

// https://docs.aws.amazon.com/amazondynamodb/latest/developerguide/WorkingWithItems.html
type DynamoDb struct {
	Client    DynamoDbClient
	TableName string
}

func NewDynamoDb(
	cfg *aws.Config, tableName string, optFns ...func(*dynamodb.Options),
) *DynamoDb {
	return &DynamoDb{dynamodb.NewFromConfig(*cfg, optFns...), tableName}
}

const (
	attrAddress   = "address"
	attrId        = "id"
	attrValid     = "valid"
	attrReason    = "reason"
	attrTimestamp = "timestamp"

	// DynamoDB deletes items some time after the Unix time in this attribute.
	attrExpires = "expires"
)

var DynamoDbPrimaryKey string = attrAddress

var DynamoDbCreateTableInput = &dynamodb.CreateTableInput{
	AttributeDefinitions: []types.AttributeDefinition{
		{
			AttributeName: &DynamoDbPrimaryKey,
			AttributeType: types.ScalarAttributeTypeS,
		},
	},
	KeySchema: []types.KeySchemaElement{
		{AttributeName: &DynamoDbPrimaryKey, KeyType: types.KeyTypeHash},
	},
	BillingMode: types.BillingModePayPerRequest,
}

// CreateResultsTable creates the table, waits up to maxWaitDuration for it to
// become active, then enables Time To Live on the "expires" attribute.
func (db *DynamoDb) CreateResultsTable(
	ctx context.Context, maxWaitDuration time.Duration,
) (err error) {
	if err = db.CreateTable(ctx); err != nil {
		return
	}

	waiter := dynamodb.NewTableExistsWaiter(db.Client)
	input := &dynamodb.DescribeTableInput{TableName: &db.TableName}
	if err = waiter.Wait(ctx, input, maxWaitDuration); err != nil {
		const errFmt = "failed waiting for %s to become active: %w"
		return fmt.Errorf(errFmt, db.TableName, err)
	}

	_, err = db.UpdateTimeToLive(ctx)
	return
}

func (db *DynamoDb) CreateTable(ctx context.Context) (err error) {
	var input dynamodb.CreateTableInput = *DynamoDbCreateTableInput
	input.TableName = &db.TableName

	if _, err = db.Client.CreateTable(ctx, &input); err != nil {
		msg := "failed to create db table " + db.TableName
		err = ops.AwsError(msg, err)
	}
	return
}

func (db *DynamoDb) WaitForTable(
	ctx context.Context, maxAttempts int, sleep func(),
) error {
	if maxAttempts <= 0 {
		const errFmt = "maxAttempts to wait for DB table must be >= 0, got: %d"
		return fmt.Errorf(errFmt, maxAttempts)
	}

	for current := 0; ; {
		td, err := db.DescribeTable(ctx)

		if err == nil && td.TableStatus == types.TableStatusActive {
			return nil
		} else if current++; current == maxAttempts {
			const errFmt = "db table %s not active after " +
				"%d attempts to check; last error: %w"
			return fmt.Errorf(errFmt, db.TableName, maxAttempts, err)
		}
		sleep()
	}
}

func (db *DynamoDb) DescribeTable(
	ctx context.Context,
) (td *types.TableDescription, err error) {
	input := &dynamodb.DescribeTableInput{TableName: &db.TableName}
	output, descErr := db.Client.DescribeTable(ctx, input)

	if descErr != nil {
		msg := "failed to describe db table " + db.TableName
		err = ops.AwsError(msg, descErr)
	} else {
		td = output.Table
	}
	return
}

func (db *DynamoDb) UpdateTimeToLive(
	ctx context.Context,
) (ttlSpec *types.TimeToLiveSpecification, err error) {
	spec := &types.TimeToLiveSpecification{
		AttributeName: aws.String(attrExpires), Enabled: aws.Bool(true),
	}
	input := &dynamodb.UpdateTimeToLiveInput{
		TableName: &db.TableName, TimeToLiveSpecification: spec,
	}

	var output *dynamodb.UpdateTimeToLiveOutput
	if output, err = db.Client.UpdateTimeToLive(ctx, input); err != nil {
		err = ops.AwsError("failed to update Time To Live", err)
	} else {
		ttlSpec = output.TimeToLiveSpecification
	}
	return
}

func (db *DynamoDb) DeleteTable(ctx context.Context) error {
	input := &dynamodb.DeleteTableInput{TableName: &db.TableName}
	if _, err := db.Client.DeleteTable(ctx, input); err != nil {
		return ops.AwsError("failed to delete db table "+db.TableName, err)
	}
	return nil
}

type (
	dbString     = types.AttributeValueMemberS
	dbNumber     = types.AttributeValueMemberN
	dbBool       = types.AttributeValueMemberBOOL
	dbAttributes = map[string]types.AttributeValue
)

func resultKey(address string) dbAttributes {
	return dbAttributes{attrAddress: &dbString{Value: address}}
}

func newResultRecord(r *Result) dbAttributes {
	record := dbAttributes{
		attrAddress:   &dbString{Value: r.Address},
		attrId:        &dbString{Value: r.Id.String()},
		attrValid:     &dbBool{Value: r.Valid},
		attrTimestamp: toDynamoDbTimestamp(r.Timestamp),
		attrExpires:   toDynamoDbTimestamp(r.Expires()),
	}
	if r.Reason != "" {
		record[attrReason] = &dbString{Value: r.Reason}
	}
	return record
}

type dbParser struct {
	attrs dbAttributes
}

func parseResult(attrs dbAttributes) (result *Result, err error) {
	p := dbParser{attrs}
	r := &Result{}
	errs := make([]error, 0, 4)
	addErr := func(e error) {
		errs = append(errs, e)
	}

	if r.Address, err = p.GetString(attrAddress); err != nil {
		addErr(err)
	}
	if r.Id, err = p.GetUid(attrId); err != nil {
		addErr(err)
	}
	if r.Valid, err = p.GetBool(attrValid); err != nil {
		addErr(err)
	}
	if r.Timestamp, err = p.GetTime(attrTimestamp); err != nil {
		addErr(err)
	}
	if _, ok := attrs[attrReason]; ok {
		if r.Reason, err = p.GetString(attrReason); err != nil {
			addErr(err)
		}
	}

	if r.Valid && r.Reason != "" {
		const errFmt = "valid result has '%s' attribute: %s"
		addErr(fmt.Errorf(errFmt, attrReason, r.Reason))
	} else if !r.Valid && r.Reason == "" && len(errs) == 0 {
		addErr(fmt.Errorf("invalid result missing '%s' attribute", attrReason))
	}

	if err = errors.Join(errs...); err != nil {
		err = errors.New("failed to parse result: " + err.Error())
	} else {
		result = r
	}
	return
}

func (p *dbParser) GetString(name string) (value string, err error) {
	return getAttribute(name, p.attrs, func(attr *dbString) (string, error) {
		return attr.Value, nil
	})
}

func (p *dbParser) GetBool(name string) (value bool, err error) {
	return getAttribute(name, p.attrs, func(attr *dbBool) (bool, error) {
		return attr.Value, nil
	})
}

func (p *dbParser) GetUid(name string) (value uuid.UUID, err error) {
	return getAttribute(name, p.attrs, func(attr *dbString) (uuid.UUID, error) {
		return uuid.Parse(attr.Value)
	})
}

func toDynamoDbTimestamp(t time.Time) *dbNumber {
	return &dbNumber{Value: strconv.FormatInt(t.Unix(), 10)}
}

func (p *dbParser) GetTime(name string) (value time.Time, err error) {
	return getAttribute(name, p.attrs, func(attr *dbNumber) (time.Time, error) {
		if ts, err := strconv.ParseInt(attr.Value, 10, 0); err != nil {
			return time.Time{}, err
		} else {
			return time.Unix(ts, 0), nil
		}
	})
}

func getAttribute[T any, V any](
	name string, attrs dbAttributes, parse func(T) (V, error),
) (value V, err error) {
	if attr, ok := attrs[name]; !ok {
		err = fmt.Errorf("attribute '%s' not in: %+v", name, attrs)
	} else if dbAttr, ok := attr.(T); !ok {
		// Inspired by: https://stackoverflow.com/a/72626548
		const errFmt = "attribute '%s' is of type %T, not %T: %+v"
		err = fmt.Errorf(errFmt, name, attr, *new(T), attr)
	} else if value, err = parse(dbAttr); err != nil {
		value = *new(V)
		const errFmt = "failed to parse '%s' from: %+v: %s"
		err = fmt.Errorf(errFmt, name, dbAttr, err)
	}
	return
}

// Get returns an error matching ErrResultNotFound if the table holds no
// record for address.
func (db *DynamoDb) Get(
	ctx context.Context, address string,
) (result *Result, err error) {
	input := &dynamodb.GetItemInput{
		Key: resultKey(address), TableName: &db.TableName,
	}
	var output *dynamodb.GetItemOutput

	if output, err = db.Client.GetItem(ctx, input); err != nil {
		err = ops.AwsError("failed to get "+address, err)
	} else if len(output.Item) == 0 {
		err = fmt.Errorf("%w: %s", ErrResultNotFound, address)
	} else {
		result, err = parseResult(output.Item)
	}
	return
}

func (db *DynamoDb) Put(ctx context.Context, result *Result) (err error) {
	input := &dynamodb.PutItemInput{
		Item: newResultRecord(result), TableName: &db.TableName,
	}
	if _, err = db.Client.PutItem(ctx, input); err != nil {
		err = ops.AwsError("failed to put "+result.Address, err)
	}
	return
}

func (db *DynamoDb) Delete(ctx context.Context, address string) (err error) {
	input := &dynamodb.DeleteItemInput{
		Key: resultKey(address), TableName: &db.TableName,
	}
	if _, err = db.Client.DeleteItem(ctx, input); err != nil {
		err = ops.AwsError("failed to delete "+address, err)
	}
	return
}
