package employee_test

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/employeegw/employee"
)

func TestRecordDecodesUpstreamFieldNames(t *testing.T) {
	t.Parallel()

	var r employee.Record
	err := json.Unmarshal([]byte(
		`{"id":1,"employee_name":"Tiger Nixon","employee_salary":320800,"employee_age":61,"profile_image":""}`,
	), &r)
	require.NoError(t, err)

	assert.Equal(t, employee.Record{
		ID: "1", Name: "Tiger Nixon", Salary: 320800, Age: 61,
	}, r)
}

func TestRecordDecodesShortFieldNames(t *testing.T) {
	t.Parallel()

	var r employee.Record
	err := json.Unmarshal([]byte(
		`{"id":"25","name":"test","salary":"123","age":"23"}`,
	), &r)
	require.NoError(t, err)

	assert.Equal(t, employee.Record{
		ID: "25", Name: "test", Salary: 123, Age: 23,
	}, r)
}

func TestRecordDecodeRejectsNonNumericSalary(t *testing.T) {
	t.Parallel()

	var r employee.Record
	err := json.Unmarshal([]byte(`{"id":"1","salary":"lots"}`), &r)
	require.Error(t, err)
}

func TestRecordEncodesCanonicalKeys(t *testing.T) {
	t.Parallel()

	out, err := json.Marshal(employee.Record{
		ID: "2", Name: "John Paul", Salary: 6000, Age: 40,
	})
	require.NoError(t, err)

	assert.JSONEq(t,
		`{"id":"2","name":"John Paul","salary":6000,"age":40}`,
		string(out),
	)
}

func TestEnvelopeNullData(t *testing.T) {
	t.Parallel()

	var env employee.Envelope
	err := json.Unmarshal([]byte(`{"status":"success","data":null}`), &env)
	require.NoError(t, err)

	assert.Equal(t, "success", env.Status)
	assert.Nil(t, env.Data)
}

func TestEnvelopeDecodesRecords(t *testing.T) {
	t.Parallel()

	var env employee.Envelope
	err := json.Unmarshal([]byte(`{
		"status": "success",
		"data": [
			{"id": 1, "employee_name": "John Doe", "employee_salary": 5000, "employee_age": 30},
			{"id": 2, "employee_name": "John Paul", "employee_salary": 6000, "employee_age": 40}
		],
		"message": "Successfully! All records has been fetched."
	}`), &env)
	require.NoError(t, err)

	require.Len(t, env.Data, 2)
	assert.Equal(t, "John Paul", env.Data[1].Name)
	assert.Equal(t, 6000, env.Data[1].Salary)
}

func TestRecordIsZero(t *testing.T) {
	t.Parallel()

	assert.True(t, employee.Record{}.IsZero())
	assert.False(t, employee.Record{ID: "1"}.IsZero())
}
